package server

import (
	"strconv"
	"strings"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signup registers a new user account.
func (s *Server) Signup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Malformed form payload"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	fieldErrors := map[string][]string{}
	if req.Username == "" {
		fieldErrors["username"] = append(fieldErrors["username"], "This field is required.")
	}
	if req.Email == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "This field is required.")
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = append(fieldErrors["password"], "Password must be at least 8 characters.")
	}
	if len(fieldErrors) > 0 {
		return c.JSON(fiber.Map{
			"form":   fiber.Map{"username": req.Username, "email": req.Email},
			"errors": fieldErrors,
		})
	}

	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	} else if existing != nil {
		fieldErrors["username"] = append(fieldErrors["username"], "A user with that username already exists.")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	} else if existing != nil {
		fieldErrors["email"] = append(fieldErrors["email"], "A user with that email already exists.")
	}
	if len(fieldErrors) > 0 {
		return c.JSON(fiber.Map{
			"form":   fiber.Map{"username": req.Username, "email": req.Email},
			"errors": fieldErrors,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// LoginForm renders the login page. The next query parameter carries
// the URL the actor originally tried to reach and is echoed back
// untouched so the client can return there after a successful login.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"template": "users/login",
		"form":     fiber.Map{"username": ""},
		"next":     c.Query("next"),
	})
}

// Login authenticates a user and issues a session token.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Malformed form payload"))
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid username or password"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid username or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
		"next":  c.Query("next"),
	})
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "quill",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(72 * time.Hour),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: "Lax",
		Path:     "/",
	})
}
