package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ProfileFollow subscribes the acting user to an author's posts.
// Following yourself and following someone twice are both harmless
// no-ops; either way the client lands on the personal feed.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if author == nil {
		return renderNotFound(c, "User not found")
	}

	if author.ID != userID {
		if err := s.followRepo.Follow(ctx, userID, author.ID); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
	}

	return c.Redirect("/follow/", fiber.StatusFound)
}

// ProfileUnfollow removes the acting user's subscription to an author.
// Unfollowing someone you never followed is a no-op.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	author, err := s.userRepo.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if author == nil {
		return renderNotFound(c, "User not found")
	}

	if err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.Redirect("/follow/", fiber.StatusFound)
}
