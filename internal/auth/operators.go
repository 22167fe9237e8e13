package auth

import (
	"slices"
	"strings"

	"github.com/frahmantamala/user-dashboard/internal"
)

type storedOperator struct {
	operator     Operator
	passwordHash string
}

// OperatorStore serves the operators listed in the security config.
type OperatorStore struct {
	operators map[string]storedOperator
}

// NewOperatorStore indexes configs by normalized email. Operators configured
// without permissions may only view users.
func NewOperatorStore(configs []internal.OperatorConfig) *OperatorStore {
	s := &OperatorStore{operators: make(map[string]storedOperator, len(configs))}
	for _, c := range configs {
		id := normalizeEmail(c.Email)
		if id == "" {
			continue
		}
		perms := slices.Clone(c.Permissions)
		if len(perms) == 0 {
			perms = []string{PermissionViewUsers}
		}
		s.operators[id] = storedOperator{
			operator: Operator{
				ID:          id,
				Email:       strings.TrimSpace(c.Email),
				Name:        c.Name,
				Permissions: perms,
			},
			passwordHash: c.PasswordHash,
		}
	}
	return s
}

func (s *OperatorStore) GetPasswordForEmail(email string) (string, string, error) {
	op, ok := s.operators[normalizeEmail(email)]
	if !ok {
		return "", "", ErrOperatorNotFound
	}
	return op.passwordHash, op.operator.ID, nil
}

func (s *OperatorStore) GetOperator(operatorID string) (*Operator, error) {
	op, ok := s.operators[operatorID]
	if !ok {
		return nil, ErrOperatorNotFound
	}
	out := op.operator
	out.Permissions = slices.Clone(out.Permissions)
	return &out, nil
}

func (s *OperatorStore) Len() int {
	return len(s.operators)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
