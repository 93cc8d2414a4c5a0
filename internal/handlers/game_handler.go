package handlers

import (
	"strconv"

	"igames/internal/models"
	"igames/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GameHandler handles HTTP requests for the game catalog.
type GameHandler struct {
	service  *services.GameService
	validate *validator.Validate
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service *services.GameService) *GameHandler {
	return &GameHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the game routes with the Fiber app.
func (h *GameHandler) RegisterRoutes(router fiber.Router) {
	gameRoutes := router.Group("/games")
	gameRoutes.Get("/", h.HandleListGames)
	gameRoutes.Post("/multiple", h.HandleGetMultipleGames)
	// Must precede /:id
	gameRoutes.Get("/random", h.HandleRandomGames)
	gameRoutes.Get("/:id", h.HandleGetGameByID)
}

// HandleListGames returns one page of the catalog, optionally filtered by name.
func (h *GameHandler) HandleListGames(c *fiber.Ctx) error {
	page := queryInt(c, "page", services.DefaultPage)
	pageSize := queryInt(c, "page_size", services.DefaultPageSize)

	result, err := h.service.ListGames(c.UserContext(), page, pageSize, c.Query("search"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, result, "")
}

// HandleGetGameByID returns a single game.
func (h *GameHandler) HandleGetGameByID(c *fiber.Ctx) error {
	game, err := h.service.GetGame(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, game, "")
}

// HandleRandomGames returns up to six random games.
func (h *GameHandler) HandleRandomGames(c *fiber.Ctx) error {
	games, err := h.service.RandomGames(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNilGames(games), "")
}

// MultipleGamesRequest is the body of POST /games/multiple.
type MultipleGamesRequest struct {
	IDs []string `json:"ids"`
}

// HandleGetMultipleGames returns the games matching the given ids.
func (h *GameHandler) HandleGetMultipleGames(c *fiber.Ctx) error {
	var req MultipleGamesRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	games, err := h.service.GamesByIDs(c.UserContext(), req.IDs)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNilGames(games), "")
}

// queryInt parses a positive integer query parameter, falling back to def.
func queryInt(c *fiber.Ctx, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func nonNilGames(games []models.Game) []models.Game {
	if games == nil {
		return []models.Game{}
	}
	return games
}
