package usecase

import (
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/jwt"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrUnknownRole = errs.New("unknown role in token")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, string, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	switch claims.Role {
	case queries.RoleMember, queries.RoleAdmin:
	default:
		return uuid.Nil, "", ErrUnknownRole
	}

	return claims.MemberID, claims.Role, nil
}
