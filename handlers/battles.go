// handlers/battles.go
package handlers

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/services"
	"github.com/mihirzalavadiya/css-battle-showcase/storage"
	"github.com/mihirzalavadiya/css-battle-showcase/uploader"
)

// BattleHandler translates HTTP method + path into BattleService calls and
// maps error kinds to status codes. It is the only layer that turns errors
// into transport statuses.
type BattleHandler struct {
	Service *services.BattleService
}

func SetupBattleRoutes(app *fiber.App, svc *services.BattleService) {
	h := &BattleHandler{Service: svc}

	api := app.Group("/api")
	api.Get("/battles", h.ListBattles)
	api.Get("/battles/:id", h.GetBattleByID)
	api.Post("/battles", h.CreateBattle)
	api.Put("/battles/:id", h.UpdateBattle)
	api.Delete("/battles/:id", h.DeleteBattle)

	// Registered last so real routes win; everything else under /battles is
	// a method mismatch, not an unknown path.
	api.All("/battles", methodNotAllowed)
	api.All("/battles/*", methodNotAllowed)
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
}

// ListBattles returns all battles. ?q= filters by title/description
// substring and ?sort=title_asc|title_desc orders by title; both are view
// conveniences over the store's natural order.
func (h *BattleHandler) ListBattles(c *fiber.Ctx) error {
	battles, err := h.Service.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	if q := c.Query("q"); q != "" {
		battles = filterBattles(battles, q)
	}
	switch c.Query("sort") {
	case "title_asc":
		sortBattlesByTitle(battles, true)
	case "title_desc":
		sortBattlesByTitle(battles, false)
	}

	if battles == nil {
		battles = []models.Battle{}
	}
	return c.JSON(battles)
}

func (h *BattleHandler) GetBattleByID(c *fiber.Ctx) error {
	battle, err := h.Service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(battle)
}

func (h *BattleHandler) CreateBattle(c *fiber.Ctx) error {
	var input models.BattleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	battle, err := h.Service.Create(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(battle)
}

func (h *BattleHandler) UpdateBattle(c *fiber.Ctx) error {
	var input models.BattleUpdate
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	battle, err := h.Service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(battle)
}

func (h *BattleHandler) DeleteBattle(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// writeError is the single place an error kind becomes a status code.
func writeError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Battle not found"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.Is(err, uploader.ErrUpload):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to upload image"})
	case errors.Is(err, storage.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func filterBattles(battles []models.Battle, q string) []models.Battle {
	q = strings.ToLower(q)
	out := make([]models.Battle, 0, len(battles))
	for _, b := range battles {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Description), q) {
			out = append(out, b)
		}
	}
	return out
}

func sortBattlesByTitle(battles []models.Battle, ascending bool) {
	// A Collator buffers internally and is not safe for concurrent use, so
	// each request gets its own.
	col := collate.New(language.English, collate.Loose)
	sort.SliceStable(battles, func(i, j int) bool {
		cmp := col.CompareString(battles[i].Title, battles[j].Title)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}
