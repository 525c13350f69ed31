package server

import (
	"encoding/json"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// Index renders the main feed: every post, newest first. The rendered
// page body is cached as opaque bytes for a short TTL, so a write only
// becomes visible once the cached page expires.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := requestedPage(c)

	key := cache.FeedPageKey(page)
	if body, ok := cache.GetPage(ctx, key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	pager := pagination.New(total, s.config.PageSize, page)
	posts, err := s.postRepo.List(ctx, pager.Limit(), pager.Offset())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	body, err := json.Marshal(feedPage{
		Posts:    posts,
		Page:     pager.Page,
		NumPages: pager.NumPages,
		Total:    pager.Total,
		HasNext:  pager.HasNext(),
		HasPrev:  pager.HasPrev(),
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	cache.SetPage(ctx, key, body, s.config.FeedCacheTTL())

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GroupFeed renders the posts of one group, newest first.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if group == nil {
		return renderNotFound(c, "Group not found")
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	pager := pagination.New(total, s.config.PageSize, requestedPage(c))
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, pager.Limit(), pager.Offset())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"group": group,
		"feed": feedPage{
			Posts:    posts,
			Page:     pager.Page,
			NumPages: pager.NumPages,
			Total:    pager.Total,
			HasNext:  pager.HasNext(),
			HasPrev:  pager.HasPrev(),
		},
	})
}

// Profile renders an author's page: their posts newest first, the post
// count, and whether the viewer follows them. Anonymous viewers always
// see following=false.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if author == nil {
		return renderNotFound(c, "User not found")
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	pager := pagination.New(total, s.config.PageSize, requestedPage(c))
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, pager.Limit(), pager.Offset())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	following := false
	if viewerID, ok := middleware.CurrentUserID(c); ok && viewerID != author.ID {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
	}

	return c.JSON(fiber.Map{
		"author":      author,
		"posts_count": total,
		"following":   following,
		"feed": feedPage{
			Posts:    posts,
			Page:     pager.Page,
			NumPages: pager.NumPages,
			Total:    pager.Total,
			HasNext:  pager.HasNext(),
			HasPrev:  pager.HasPrev(),
		},
	})
}

// FollowIndex renders the personal feed: posts by authors the acting
// user follows, newest first. Empty until the user follows someone.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	total, err := s.postRepo.CountByFollowed(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	pager := pagination.New(total, s.config.PageSize, requestedPage(c))
	posts, err := s.postRepo.ListByFollowed(ctx, userID, pager.Limit(), pager.Offset())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(feedPage{
		Posts:    posts,
		Page:     pager.Page,
		NumPages: pager.NumPages,
		Total:    pager.Total,
		HasNext:  pager.HasNext(),
		HasPrev:  pager.HasPrev(),
	})
}
