package server

import (
	"fmt"
	"io"

	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// feedPage is the rendered shape shared by every post listing view.
type feedPage struct {
	Posts    interface{} `json:"posts"`
	Page     int         `json:"page"`
	NumPages int         `json:"num_pages"`
	Total    int64       `json:"total"`
	HasNext  bool        `json:"has_next"`
	HasPrev  bool        `json:"has_prev"`
}

func profilePath(username string) string {
	return fmt.Sprintf("/profile/%s/", username)
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// requestedPage reads the page query parameter. Out-of-range values are
// clamped later by the paginator, so anything unparsable falls back to 1.
func requestedPage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// renderNotFound renders the dedicated not-found page payload.
func renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"template": "core/404",
		"error":    message,
		"path":     c.Path(),
	})
}

// parsePostInput binds the text and group fields plus the optional image
// upload from a form or JSON body.
func parsePostInput(c *fiber.Ctx) (*validation.PostInput, error) {
	var input validation.PostInput
	if err := c.BodyParser(&input); err != nil {
		return nil, err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return &input, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	input.Image = data
	input.ImageName = fileHeader.Filename
	return &input, nil
}
