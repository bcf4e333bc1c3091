package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/paydesk/internal/server/config"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

const goodPassword = "correct-horse-9"

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
		CheckoutBaseURL:              "http://pay.test/checkout",
	}
}

func newUsers(t *testing.T) (*UserService, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	s := NewUserService(store, testConfig(), nil)
	s.bcryptCost = bcrypt.MinCost
	return s, store
}
