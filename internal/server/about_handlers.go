package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// AboutAuthor renders the static page about the project's author.
func (s *Server) AboutAuthor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"template": "about/author",
		"title":    "About the author",
		"year":     time.Now().Year(),
	})
}

// AboutTech renders the static page about the technology stack.
func (s *Server) AboutTech(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"template": "about/tech",
		"title":    "Technologies",
		"year":     time.Now().Year(),
	})
}
