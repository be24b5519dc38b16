package newsportal

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Admin is the built-in administrator account configured outside the database.
type Admin struct {
	Email    string
	Password string
}

// AdminName is the display name of the configured administrator.
const AdminName = "Administrator"

type Manager struct {
	db     Repository
	tokens *Tokens
	admin  Admin
	now    func() time.Time
}

func NewManager(repo Repository, tokens *Tokens, admin Admin) *Manager {
	return &Manager{
		db:     repo,
		tokens: tokens,
		admin:  admin,
		now:    time.Now,
	}
}

// Tokens returns the token issuer shared with transport middleware.
func (m *Manager) Tokens() *Tokens {
	return m.tokens
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
