package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddComment attaches a comment to a post. The author and the parent
// post are bound from the actor and the URL, never from the payload.
// On success the client is sent back to the post detail page.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return renderNotFound(c, "Post not found")
	}

	post, err := s.postRepo.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderNotFound(c, "Post not found")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	var input validation.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Malformed form payload"))
	}

	if fieldErrors := input.Validate(); fieldErrors.HasErrors() {
		comments, err := s.commentRepo.ListByPost(ctx, post.ID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		return c.JSON(fiber.Map{
			"post":     post,
			"comments": comments,
			"form":     fiber.Map{"text": input.Text},
			"errors":   fieldErrors,
		})
	}

	comment := &models.Comment{
		Text:     input.Text,
		AuthorID: userID,
		PostID:   post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	observability.CommentsCreated.Inc()

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}
