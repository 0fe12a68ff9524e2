package server

import (
	"sama/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills
func (s *Server) GetSkills(c *fiber.Ctx) error {
	skills, err := s.taxonomyRepo.ListSkills(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(skills)
}

// GetInterests handles GET /api/interests
func (s *Server) GetInterests(c *fiber.Ctx) error {
	interests, err := s.taxonomyRepo.ListInterests(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(interests)
}
