package handlers

import (
	"context"
	"strings"

	"igames/internal/apperror"
	"igames/internal/middleware"
	"igames/internal/models"
	"igames/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts, profiles, wishlists and carts.
type UserHandler struct {
	authService    *services.AuthService
	accountService *services.AccountService
	validate       *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, accountService *services.AccountService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		accountService: accountService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the user routes. Everything except register and login
// goes through the bearer token gate.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)

	// Per route so unknown /users paths still fall through to 404
	authRequired := middleware.AuthRequired(h.authService)
	userRoutes.Patch("/wishlist/add", authRequired, h.HandleAddToWishlist)
	userRoutes.Patch("/wishlist/remove", authRequired, h.HandleRemoveFromWishlist)
	userRoutes.Patch("/cart/add", authRequired, h.HandleAddToCart)
	userRoutes.Patch("/cart/remove", authRequired, h.HandleRemoveFromCart)
	userRoutes.Patch("/me/password", authRequired, h.HandleUpdatePassword)
	userRoutes.Get("/me", authRequired, h.HandleGetProfile)
	userRoutes.Patch("/me", authRequired, h.HandleUpdateProfile)
	userRoutes.Delete("/me", authRequired, h.HandleDeleteProfile)
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates an account and returns it with a bearer token.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = models.NormalizeEmail(req.Email)
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, token, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return respondWithToken(c, fiber.StatusCreated, user, token, "Your account has been successfully created")
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and returns the user with a bearer token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respondWithToken(c, fiber.StatusOK, user, token, "Logged in successfully")
}

// GameRequest is the body of the wishlist and cart routes.
type GameRequest struct {
	GameID string `json:"gameId" validate:"required"`
}

type listMutation func(ctx context.Context, user *models.User, gameID string) (*models.User, error)

func (h *UserHandler) mutateList(c *fiber.Ctx, mutate listMutation, message string) error {
	var req GameRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	user, err := mutate(c.UserContext(), middleware.CurrentUser(c), req.GameID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user, message)
}

// HandleAddToWishlist adds a game to the caller's wishlist.
func (h *UserHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	return h.mutateList(c, h.accountService.AddToWishlist, "Game added to wishlist")
}

// HandleRemoveFromWishlist removes a game from the caller's wishlist.
func (h *UserHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	return h.mutateList(c, h.accountService.RemoveFromWishlist, "Game removed from wishlist")
}

// HandleAddToCart adds a game to the caller's cart.
func (h *UserHandler) HandleAddToCart(c *fiber.Ctx) error {
	return h.mutateList(c, h.accountService.AddToCart, "Game added to cart")
}

// HandleRemoveFromCart removes a game from the caller's cart.
func (h *UserHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	return h.mutateList(c, h.accountService.RemoveFromCart, "Game removed from cart")
}

// HandleGetProfile returns the caller.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, middleware.CurrentUser(c), "")
}

// HandleUpdateProfile changes the caller's username and/or email.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	fields := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&fields); err != nil {
			return apperror.BadRequest("Invalid request body")
		}
	}

	user, changed, err := h.accountService.UpdateProfile(c.UserContext(), middleware.CurrentUser(c), fields)
	if err != nil {
		return err
	}

	message := "Profile updated successfully"
	if len(changed) > 0 {
		message = strings.Join(changed, " and ") + " updated successfully"
	}
	return respond(c, fiber.StatusOK, user, message)
}

// UpdatePasswordRequest is the body of PATCH /users/me/password.
type UpdatePasswordRequest struct {
	Password services.PasswordChange `json:"password"`
}

// HandleUpdatePassword replaces the caller's password.
func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}

	if err := h.accountService.UpdatePassword(c.UserContext(), middleware.CurrentUser(c), req.Password); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Password updated successfully", "")
}

// HandleDeleteProfile deletes the caller's account.
func (h *UserHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	if err := h.accountService.DeleteProfile(c.UserContext(), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Deleted successfully", "Account deleted successfully")
}
