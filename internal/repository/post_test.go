package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func emptyPostRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "content", "author_id", "likes", "comments", "shares"})
}

func TestPostRepository_List_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// The search term matches post content, author name, or author username,
	// always case-insensitively.
	mock.ExpectQuery(regexp.QuoteMeta(`posts.content ILIKE $1 OR users.name ILIKE $2 OR users.username ILIKE $3`)).
		WithArgs("%golang%", "%golang%", "%golang%", 50).
		WillReturnRows(emptyPostRows())

	_, err := repo.List(context.Background(), ListPostsParams{
		Limit:  50,
		SortBy: SortRecent,
		Search: "golang",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_JoinsAuthors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.* FROM "posts" JOIN users ON users.id = posts.author_id`)).
		WithArgs(50).
		WillReturnRows(emptyPostRows())

	_, err := repo.List(context.Background(), ListPostsParams{Limit: 50})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_RoleFilterArgs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	t.Run("Single role", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`users.role = $1`)).
			WithArgs("mentor", 50).
			WillReturnRows(emptyPostRows())

		_, err := repo.List(context.Background(), ListPostsParams{Limit: 50, RoleFilter: "mentor"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Both expands to mentor and student", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`users.role IN ($1,$2)`)).
			WithArgs("mentor", "student", 50).
			WillReturnRows(emptyPostRows())

		_, err := repo.List(context.Background(), ListPostsParams{Limit: 50, RoleFilter: RoleFilterBoth})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List_SortClause(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	tests := []struct {
		name    string
		sortBy  string
		orderBy string
	}{
		{"Most liked", SortMostLiked, `ORDER BY posts.likes DESC`},
		{"Most commented", SortMostCommented, `ORDER BY posts.comments DESC`},
		{"Recent", SortRecent, `ORDER BY posts.created_at DESC`},
		{"Unknown key falls back to recent", "trending", `ORDER BY posts.created_at DESC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(tt.orderBy)).
				WithArgs(50).
				WillReturnRows(emptyPostRows())

			_, err := repo.List(context.Background(), ListPostsParams{Limit: 50, SortBy: tt.sortBy})
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
