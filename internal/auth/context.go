package auth

import (
	"context"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/pkg/logger"
)

type ctxKey string

const ContextOperatorKey ctxKey = "operator"

// Anonymous stands in for a signed-in operator when authentication is off.
var Anonymous = Operator{
	ID:          "anonymous",
	Name:        "Anonymous",
	Permissions: []string{PermissionViewUsers, PermissionManageUsers},
}

func OperatorFromContext(ctx context.Context) (*Operator, bool) {
	op, ok := ctx.Value(ContextOperatorKey).(*Operator)
	return op, ok && op != nil
}

// ContextWithOperator stores op and tags the request logger with its id.
func ContextWithOperator(ctx context.Context, op *Operator) context.Context {
	ctx = context.WithValue(ctx, ContextOperatorKey, op)
	ctx = internal.ContextWithOperatorID(ctx, op.ID)
	return logger.With(ctx, "operator_id", op.ID)
}
