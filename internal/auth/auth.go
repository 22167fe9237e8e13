package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Permissions an operator can hold.
const (
	PermissionViewUsers   = "view_users"
	PermissionManageUsers = "manage_users"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrOperatorNotFound = errors.New("operator not found")

// Operator is a person signed in to the dashboard. ID is the normalized email.
type Operator struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (o *Operator) HasPermission(permission string) bool {
	return slices.Contains(o.Permissions, permission)
}

func (o *Operator) HasAnyPermission(permissions []string) bool {
	for _, p := range permissions {
		if o.HasPermission(p) {
			return true
		}
	}
	return false
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claims represents JWT token claims
type Claims struct {
	OperatorID string `json:"operator_id"`
	Email      string `json:"email"`
	Type       string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and checks operator tokens.
type TokenGenerator interface {
	GenerateAccessToken(op *Operator) (string, error)
	GenerateRefreshToken(op *Operator) (string, error)
	ValidateToken(tokenString, tokenType string) (*Claims, error)
	AccessTTL() time.Duration
}

type OperatorRepository interface {
	GetPasswordForEmail(email string) (passwordHash string, operatorID string, err error)
	GetOperator(operatorID string) (*Operator, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetOperator(operatorID string) (*Operator, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
