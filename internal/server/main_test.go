package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"quill/internal/config"
	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testMocks struct {
	users    *MockUserRepository
	groups   *MockGroupRepository
	posts    *MockPostRepository
	comments *MockCommentRepository
	follows  *MockFollowRepository
}

// setupTestApp wires a Server onto mock repositories. Redis stays nil,
// so rate limits fail open and the page cache is disabled unless a test
// attaches one explicitly.
func setupTestApp(t *testing.T) (*fiber.App, *testMocks) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		JWTSecret:           testSecret,
		Env:                 "test",
		PageSize:            10,
		FeedCacheTTLSeconds: 20,
		MediaRoot:           t.TempDir(),
	}
	middleware.InitMiddleware(cfg)

	m := &testMocks{
		users:    new(MockUserRepository),
		groups:   new(MockGroupRepository),
		posts:    new(MockPostRepository),
		comments: new(MockCommentRepository),
		follows:  new(MockFollowRepository),
	}

	s := &Server{
		config:      cfg,
		userRepo:    m.users,
		groupRepo:   m.groups,
		postRepo:    m.posts,
		commentRepo: m.comments,
		followRepo:  m.follows,
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, m
}

func authToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authedRequest(t *testing.T, method, target string, userID uint, form url.Values) *http.Request {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+authToken(t, userID))
	}
	return req
}
