// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"sama/internal/cache"
	"sama/internal/models"

	"gorm.io/gorm"
)

// Feed sort keys. Anything else falls back to SortRecent.
const (
	SortRecent        = "recent"
	SortMostLiked     = "most-liked"
	SortMostCommented = "most-commented"
)

// Role filter values. RoleFilterBoth matches mentors and students but not admins.
const (
	RoleFilterAll  = "all"
	RoleFilterBoth = "both"
)

// ListPostsParams carries the feed query parameters. Filters compose with AND.
type ListPostsParams struct {
	Skip        int
	Limit       int
	SortBy      string
	RoleFilter  string
	SkillFilter string // accepted but not applied to the query
	Search      string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, params ListPostsParams) ([]*models.Post, error)
	AdjustLikes(ctx context.Context, id uint, increment bool) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.preloadAuthor(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List builds a single query over posts joined with their authors: role
// filter, then case-insensitive search over content/author name/author
// username, then exactly one sort key, then skip/limit. An empty result is a
// valid outcome, not an error.
func (r *postRepository) List(ctx context.Context, params ListPostsParams) ([]*models.Post, error) {
	var posts []*models.Post

	q := r.preloadAuthor(r.db.WithContext(ctx)).
		Model(&models.Post{}).
		Select("posts.*").
		Joins("JOIN users ON users.id = posts.author_id")

	switch params.RoleFilter {
	case "", RoleFilterAll:
		// no restriction
	case RoleFilterBoth:
		q = q.Where("users.role IN ?", []string{models.RoleMentor, models.RoleStudent})
	default:
		q = q.Where("users.role = ?", params.RoleFilter)
	}

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("posts.content ILIKE ? OR users.name ILIKE ? OR users.username ILIKE ?", like, like, like)
	}

	// Note: params.SkillFilter is accepted by the API surface but deliberately
	// not applied here; see TestListPosts_SkillFilterIsNoOp.

	err := r.applySort(q, params.SortBy).
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applySort appends the ORDER BY clause for the requested sort key.
// Unrecognized keys fall back to newest-first.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortMostLiked:
		return db.Order("posts.likes DESC")
	case SortMostCommented:
		return db.Order("posts.comments DESC")
	default: // SortRecent and anything unrecognized
		return db.Order("posts.created_at DESC")
	}
}

// AdjustLikes applies the like-count change as a single conditional UPDATE so
// concurrent callers on the same post cannot lose updates. The counter is
// floored at zero rather than surfacing an error.
func (r *postRepository) AdjustLikes(ctx context.Context, id uint, increment bool) (*models.Post, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr(
			"CASE WHEN ? THEN likes + 1 WHEN likes > 0 THEN likes - 1 ELSE 0 END",
			increment,
		))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Post", id)
	}

	cache.InvalidatePost(ctx, id)
	return r.GetByID(ctx, id)
}

// preloadAuthor attaches the author with its taxonomy associations so the
// API's post representation always carries a fully populated author.
func (r *postRepository) preloadAuthor(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Author.Skills").
		Preload("Author.Interests")
}
