package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"igames/internal/apperror"
	"igames/internal/auth"
	"igames/internal/models"
	"igames/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Profile fields that PATCH /users/me may change, in response-message order.
var updatableFields = []string{"username", "email"}

// PasswordChange is the body of a password update.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// userList names one of the game id lists on a user.
type userList struct {
	name  string
	field func(*models.User) *[]string
}

var (
	wishlist = userList{name: "wishlist", field: func(u *models.User) *[]string { return &u.Wishlist }}
	cart     = userList{name: "cart", field: func(u *models.User) *[]string { return &u.Cart }}
)

// AccountService handles profile, password, wishlist and cart changes for an authenticated user.
// Every mutation rewrites the whole user record.
type AccountService struct {
	userRepo repositories.UserRepository
	gameRepo repositories.GameRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repositories.UserRepository, gameRepo repositories.GameRepository, events EventPublisher) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		events:   events,
		validate: validator.New(),
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Wishlist = slices.Clone(u.Wishlist)
	c.Cart = slices.Clone(u.Cart)
	c.EnsureLists()
	return &c
}

// UpdateProfile applies username/email changes. It returns the saved user and the changed
// field names. Unknown fields are rejected before anything is written.
func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, fields map[string]any) (*models.User, []string, error) {
	for key := range fields {
		if !slices.Contains(updatableFields, key) {
			return nil, nil, apperror.BadRequest("Invalid updates")
		}
	}

	updated := cloneUser(user)
	var changed []string
	for _, key := range updatableFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return nil, nil, apperror.BadRequest("Field '%s' must be a string", key)
		}

		switch key {
		case "username":
			value = strings.TrimSpace(value)
			if err := s.validate.Var(value, "required,max=100"); err != nil {
				return nil, nil, apperror.BadRequest("Invalid username")
			}
			updated.Username = value
		case "email":
			value = models.NormalizeEmail(value)
			if err := s.validate.Var(value, "required,email"); err != nil {
				return nil, nil, apperror.BadRequest("Invalid email address.")
			}
			if err := s.ensureEmailAvailable(ctx, value, user.ID); err != nil {
				return nil, nil, err
			}
			updated.Email = value
		}
		changed = append(changed, key)
	}

	if err := s.userRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, nil, apperror.BadRequest("User with email %s already exists", updated.Email)
		}
		return nil, nil, saveError(err)
	}
	return updated, changed, nil
}

func (s *AccountService) ensureEmailAvailable(ctx context.Context, email, userID string) error {
	owner, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && owner.ID != userID:
		return apperror.BadRequest("User with email %s already exists", email)
	case err == nil, errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return apperror.Internal(err)
	}
}

// UpdatePassword replaces the password after checking the current one.
func (s *AccountService) UpdatePassword(ctx context.Context, user *models.User, change PasswordChange) error {
	if !auth.VerifyPassword(change.CurrentPassword, user.Password) {
		return apperror.Unauthorized("Incorrect current password")
	}
	if change.NewPassword != change.ConfirmPassword {
		return apperror.Conflict("Passwords do not match")
	}
	if len(change.NewPassword) < auth.MinPasswordLength {
		return apperror.BadRequest("Password too short.")
	}

	hashed, err := auth.HashPassword(change.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	updated := cloneUser(user)
	updated.Password = hashed
	if err := s.userRepo.Update(ctx, updated); err != nil {
		return saveError(err)
	}
	return nil
}

// DeleteProfile permanently removes the account. Other records are left untouched.
func (s *AccountService) DeleteProfile(ctx context.Context, user *models.User) error {
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return saveError(err)
	}
	publishAccountEvent(s.events, models.EventUserDeleted, user)
	return nil
}

// AddToWishlist appends gameID to the wishlist. Adding a game twice is Forbidden.
func (s *AccountService) AddToWishlist(ctx context.Context, user *models.User, gameID string) (*models.User, error) {
	return s.addGame(ctx, user, gameID, wishlist)
}

// RemoveFromWishlist removes gameID from the wishlist. Removing an absent game is Forbidden.
func (s *AccountService) RemoveFromWishlist(ctx context.Context, user *models.User, gameID string) (*models.User, error) {
	return s.removeGame(ctx, user, gameID, wishlist)
}

// AddToCart appends gameID to the cart.
func (s *AccountService) AddToCart(ctx context.Context, user *models.User, gameID string) (*models.User, error) {
	return s.addGame(ctx, user, gameID, cart)
}

// RemoveFromCart removes gameID from the cart.
func (s *AccountService) RemoveFromCart(ctx context.Context, user *models.User, gameID string) (*models.User, error) {
	return s.removeGame(ctx, user, gameID, cart)
}

func (s *AccountService) addGame(ctx context.Context, user *models.User, gameID string, list userList) (*models.User, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, gameLookupError(err, gameID)
	}

	updated := cloneUser(user)
	items := list.field(updated)
	if models.Contains(*items, game.ID) {
		return nil, apperror.Forbidden("Game already exists in the %s", list.name)
	}
	*items = append(*items, game.ID)

	if err := s.userRepo.Update(ctx, updated); err != nil {
		return nil, saveError(err)
	}
	return updated, nil
}

func (s *AccountService) removeGame(ctx context.Context, user *models.User, gameID string, list userList) (*models.User, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, gameLookupError(err, gameID)
	}

	updated := cloneUser(user)
	items := list.field(updated)
	if !models.Contains(*items, game.ID) {
		return nil, apperror.Forbidden("Game does not exist in the %s", list.name)
	}
	*items = models.Without(*items, game.ID)

	if err := s.userRepo.Update(ctx, updated); err != nil {
		return nil, saveError(err)
	}
	return updated, nil
}

func saveError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound("User not found")
	}
	return apperror.Internal(err)
}
