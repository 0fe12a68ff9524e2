package server

import (
	"sama/internal/models"
	"sama/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	post := &models.Post{
		Content:  req.Content,
		AuthorID: user.ID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Re-read so the response carries the populated author.
	created, err := s.postRepo.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetPosts handles GET /api/posts
//
// Query parameters: skip, limit, sort_by (recent | most-liked |
// most-commented), role_filter (all | mentor | student | both | admin),
// skill_filter (accepted, currently not applied), search_query.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 100)

	params := repository.ListPostsParams{
		Skip:        page.Skip,
		Limit:       page.Limit,
		SortBy:      c.Query("sort_by", repository.SortRecent),
		RoleFilter:  c.Query("role_filter", repository.RoleFilterAll),
		SkillFilter: c.Query("skill_filter", "all"),
		Search:      c.Query("search_query"),
	}

	posts, err := s.postRepo.List(c.Context(), params)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(post)
}

// LikePost handles POST /api/posts/:id/like
//
// Authentication gates access only; likes are a bare counter with no
// per-user tracking, so the same user may adjust a post repeatedly.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req := struct {
		Increment *bool `json:"increment"`
	}{}
	// An empty body defaults to increment.
	_ = c.BodyParser(&req)
	increment := req.Increment == nil || *req.Increment

	post, err := s.postRepo.AdjustLikes(c.Context(), id, increment)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post like updated",
		"likes":   post.Likes,
	})
}
