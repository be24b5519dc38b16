package newsportal

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

func (m *Manager) Accounts(ctx context.Context, q AccountQuery) (paging.Envelope[Account], error) {
	list, total, err := m.db.Accounts(ctx, q.AccountSearch, q.Sort, q.Paging)
	if err != nil {
		return paging.Envelope[Account]{}, fmt.Errorf("db get accounts: %w", err)
	}

	return paging.NewEnvelope(NewAccounts(list), total, q.Paging), nil
}

// AccountByID returns the account with the number of news it created.
func (m *Manager) AccountByID(ctx context.Context, id int) (*Account, error) {
	account, err := m.db.AccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get account: %w", err)
	} else if account == nil {
		return nil, ErrNotFound
	}

	count, err := m.db.CountNewsByCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db count account news: %w", err)
	}

	a := NewAccount(account)
	a.NewsCount = count
	return &a, nil
}

func (m *Manager) CreateAccount(ctx context.Context, in AccountInput) (*Account, error) {
	exists, err := m.db.EmailExists(ctx, in.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("db check email: %w", err)
	} else if exists {
		return nil, ErrEmailExists
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db.Account{
		Name:     in.Name,
		Email:    in.Email,
		Role:     int(in.Role),
		Password: hash,
	}
	if err := m.db.AddAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("db add account: %w", err)
	}

	a := NewAccount(account)
	return &a, nil
}

// UpdateAccount keeps the stored password hash when in.Password is empty.
func (m *Manager) UpdateAccount(ctx context.Context, id int, in AccountInput) (*Account, error) {
	account, err := m.db.AccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get account: %w", err)
	} else if account == nil {
		return nil, ErrNotFound
	}

	exists, err := m.db.EmailExists(ctx, in.Email, &id)
	if err != nil {
		return nil, fmt.Errorf("db check email: %w", err)
	} else if exists {
		return nil, ErrEmailExists
	}

	account.Name = in.Name
	account.Email = in.Email
	account.Role = int(in.Role)
	if in.Password != "" {
		if account.Password, err = hashPassword(in.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	ok, err := m.db.UpdateAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("db update account: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}

	return m.AccountByID(ctx, id)
}

// DeleteAccount refuses to remove an account that authored news.
func (m *Manager) DeleteAccount(ctx context.Context, id int) error {
	return m.db.InTx(ctx, func(tx Repository) error {
		used, err := tx.AccountHasNews(ctx, id)
		if err != nil {
			return fmt.Errorf("db check account news: %w", err)
		} else if used {
			return ErrHasNews
		}

		ok, err := tx.DeleteAccount(ctx, id)
		if errors.Is(err, db.ErrReferenced) {
			return fmt.Errorf("%w: %w", ErrInUse, err)
		} else if err != nil {
			return fmt.Errorf("db delete account: %w", err)
		} else if !ok {
			return ErrNotFound
		}

		return nil
	})
}
