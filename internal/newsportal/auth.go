package newsportal

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
)

// Login checks the configured admin first, then stored accounts.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if m.isAdmin(email, password) {
		return m.session(0, m.admin.Email, AdminName, RoleAdmin)
	}

	account, err := m.db.AccountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("db get account by email: %w", err)
	} else if account == nil || !checkPassword(account.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return m.session(account.ID, account.Email, account.Name, Role(account.Role))
}

func (m *Manager) isAdmin(email, password string) bool {
	if m.admin.Email == "" || m.admin.Password == "" {
		return false
	}

	return strings.EqualFold(m.admin.Email, email) &&
		subtle.ConstantTimeCompare([]byte(m.admin.Password), []byte(password)) == 1
}

func (m *Manager) session(id int, email, name string, role Role) (*Session, error) {
	token, expiresAt, err := m.tokens.Issue(Claims{AccountID: id, Email: email, Role: role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		AccountID: id,
		Email:     email,
		Name:      name,
		Role:      role,
	}, nil
}
