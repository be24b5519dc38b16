//go:build integration

package newsportal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = db.SetupTestDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func withTx(t *testing.T) (*pg.Tx, context.Context, *Manager) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	manager := NewManager(NewRepository(db.New(tx)), NewTokens("secret", "fu-news", time.Hour), Admin{})
	return tx, ctx, manager
}

func TestManager_NewsArticles_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	env, err := manager.NewsArticles(ctx, NewsQuery{
		NewsSearch: db.NewsSearch{Status: boolPtr(true)},
		Sort:       db.Sort{By: "createdDate", Descending: true},
		Paging:     paging.Params{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, env.TotalItems)
	assert.Equal(t, 3, env.TotalPages)
	require.Len(t, env.Items, 2)
	assert.Equal(t, "NEWS0007", env.Items[0].ID)
	assert.Equal(t, "NEWS0005", env.Items[1].ID)
	assert.Len(t, env.Items[0].Tags, 2)
}

func TestManager_CreateNews_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	news, err := manager.CreateNews(ctx, NewsInput{
		Title:      "Scholarship results",
		Headline:   "Winners",
		Content:    "The list of scholarship winners is out.",
		CategoryID: 1,
		Status:     true,
		TagIDs:     []int{1, 3},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, "NEWS0008", news.ID)
	assert.Equal(t, "Academic", news.Category.Name)
	assert.Len(t, news.Tags, 2)

	_, err = manager.CreateNews(ctx, NewsInput{Title: "x", Headline: "x", Content: "x", CategoryID: 3}, 1)
	assert.ErrorIs(t, err, ErrCategoryInactive)
}

func TestManager_NextNewsIDUnderConcurrency_Integration(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewRepository(db.New(testDB)), NewTokens("secret", "fu-news", time.Hour), Admin{})

	const workers = 5
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			news, err := manager.CreateNews(ctx, NewsInput{Title: "Concurrent", Headline: "h", Content: "c", CategoryID: 1}, 1)
			if err == nil {
				ids[i] = news.ID
			}
			errs[i] = err
		}()
	}
	wg.Wait()

	t.Cleanup(func() {
		_, _ = testDB.ExecContext(ctx, `DELETE FROM "news" WHERE "title" = 'Concurrent'`)
	})

	seen := map[string]bool{}
	for i := range workers {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "duplicate id %s", ids[i])
		seen[ids[i]] = true
	}
}

func TestManager_DeleteReferenced_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	assert.ErrorIs(t, manager.DeleteCategory(ctx, 1), ErrHasNews)
	assert.ErrorIs(t, manager.DeleteTag(ctx, 1), ErrHasNews)
	assert.ErrorIs(t, manager.DeleteAccount(ctx, 1), ErrHasNews)
}

func boolPtr(v bool) *bool { return &v }
