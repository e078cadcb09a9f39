//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, memberID uuid.UUID, role string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.GenerateToken(memberID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, memberID uuid.UUID, role string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.GenerateToken(memberID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
