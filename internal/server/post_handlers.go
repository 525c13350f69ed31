package server

import (
	"errors"
	"os"
	"path/filepath"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostDetail renders one post with its comments, a blank comment form
// and the author's total post count.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()

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

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	postsCount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"post":        post,
		"posts_count": postsCount,
		"comments":    comments,
		"form":        fiber.Map{"text": ""},
	})
}

// CreatePostForm renders the blank post form with the group choices.
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"form":   fiber.Map{"text": "", "group_id": nil},
		"groups": groups,
	})
}

// CreatePost creates a post owned by the acting user. The author is
// never taken from the payload. On success the client is sent to the
// author's profile; on validation failure the form is re-rendered with
// field errors and nothing is persisted.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	input, err := parsePostInput(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Malformed form payload"))
	}

	fieldErrors := input.Validate()
	if err := s.checkGroupChoice(c, input, fieldErrors); err != nil {
		return err
	}
	if fieldErrors.HasErrors() {
		return s.renderPostForm(c, input, fieldErrors)
	}

	imagePath, err := s.saveImage(input)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: userID,
		GroupID:  input.GroupID,
		Image:    imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	observability.PostsCreated.Inc()

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

// EditPostForm renders the edit form prefilled with the post's current
// values. Non-owners are sent to the post detail page instead.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
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

	if post.AuthorID != userID {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"form":    fiber.Map{"text": post.Text, "group_id": post.GroupID},
		"groups":  groups,
		"is_edit": true,
		"post_id": post.ID,
	})
}

// EditPost updates a post's text, group and image. Only the owner may
// edit; anyone else is silently sent to the post detail page. The
// author and creation time never change.
func (s *Server) EditPost(c *fiber.Ctx) error {
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

	if post.AuthorID != userID {
		return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
	}

	input, err := parsePostInput(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Malformed form payload"))
	}

	fieldErrors := input.Validate()
	if err := s.checkGroupChoice(c, input, fieldErrors); err != nil {
		return err
	}
	if fieldErrors.HasErrors() {
		return s.renderPostForm(c, input, fieldErrors)
	}

	post.Text = input.Text
	post.GroupID = input.GroupID
	if len(input.Image) > 0 {
		imagePath, err := s.saveImage(input)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		post.Image = imagePath
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.Redirect(postDetailPath(post.ID), fiber.StatusFound)
}

// checkGroupChoice verifies a submitted group id refers to a real group.
func (s *Server) checkGroupChoice(c *fiber.Ctx, input *validation.PostInput, fieldErrors validation.FieldErrors) error {
	if input.GroupID == nil {
		return nil
	}

	group, err := s.groupRepo.GetByID(c.UserContext(), *input.GroupID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if group == nil {
		fieldErrors.Add("group_id", "Select a valid choice.")
	}
	return nil
}

// renderPostForm re-renders the post form with the submitted values and
// the per-field errors. The response is a plain 200: the form page
// rendered again, not an API error.
func (s *Server) renderPostForm(c *fiber.Ctx, input *validation.PostInput, fieldErrors validation.FieldErrors) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"form":   fiber.Map{"text": input.Text, "group_id": input.GroupID},
		"errors": fieldErrors,
		"groups": groups,
	})
}

// saveImage writes an uploaded attachment under the media root and
// returns its stored relative path, or "" when nothing was uploaded.
func (s *Server) saveImage(input *validation.PostInput) (string, error) {
	if len(input.Image) == 0 {
		return "", nil
	}

	dir := filepath.Join(s.config.MediaRoot, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(input.ImageName)
	if err := os.WriteFile(filepath.Join(dir, name), input.Image, 0o644); err != nil {
		return "", err
	}

	return filepath.Join("posts", name), nil
}
