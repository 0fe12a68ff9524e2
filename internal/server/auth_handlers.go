// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"sama/internal/auth"
	"sama/internal/models"
	"sama/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name         string   `json:"name"`
		Username     string   `json:"username"`
		Email        string   `json:"email"`
		Password     string   `json:"password"`
		Role         string   `json:"role"`
		Bio          string   `json:"bio"`
		Location     string   `json:"location"`
		Avatar       string   `json:"avatar"`
		Availability string   `json:"availability"`
		Skills       []string `json:"skills"`
		Interests    []string `json:"interests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, username, email, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateRole(req.Role); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateAvailability(req.Availability); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Uniqueness checks: username first, then email.
	existing, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError("Username already registered"))
	}
	existing, err = s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError("Email already registered"))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	avatar := req.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatarURL
	}
	availability := req.Availability
	if availability == "" {
		availability = models.AvailabilityAvailable
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashed,
		Role:         role,
		Bio:          req.Bio,
		Location:     req.Location,
		Avatar:       avatar,
		Availability: availability,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		// Concurrent registration of the same username/email loses the
		// unique-constraint race here rather than at the lookup above.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.attachTaxonomy(c, user, req.Skills, req.Interests); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Re-read so the response carries the derived skill/interest name lists.
	created, err := s.userRepo.GetByID(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// attachTaxonomy resolves skill/interest names through get-or-create and
// replaces the user's associations with the resulting rows.
func (s *Server) attachTaxonomy(c *fiber.Ctx, user *models.User, skillNames, interestNames []string) error {
	if len(skillNames) > 0 {
		skills := make([]models.Skill, 0, len(skillNames))
		for _, name := range skillNames {
			skill, err := s.taxonomyRepo.GetOrCreateSkill(c.Context(), name)
			if err != nil {
				return err
			}
			skills = append(skills, *skill)
		}
		if err := s.userRepo.ReplaceSkills(c.Context(), user, skills); err != nil {
			return err
		}
	}

	if len(interestNames) > 0 {
		interests := make([]models.Interest, 0, len(interestNames))
		for _, name := range interestNames {
			interest, err := s.taxonomyRepo.GetOrCreateInterest(c.Context(), name)
			if err != nil {
				return err
			}
			interests = append(interests, *interest)
		}
		if err := s.userRepo.ReplaceInterests(c.Context(), user, interests); err != nil {
			return err
		}
	}

	return nil
}

// Login handles POST /api/auth/login
// @Summary Authenticate and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{access_token=string,token_type=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := auth.Authenticate(c.Context(), s.userRepo, req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		// One generic message for unknown username and wrong password alike.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect username or password"))
	}

	if err := s.userRepo.SetOnline(c.Context(), user.ID, true); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetCurrentUser handles GET /api/auth/me
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	// The token middleware resolves by username without associations; re-read
	// through the cache-backed path for the full representation.
	full, err := s.userRepo.GetByID(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	return c.JSON(full)
}
