package deck

import (
	"card-vault/core/apperr"
	"card-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for decks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the deck routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/decks")
	group.Get("/", h.HandleListAll)
	group.Delete("/", h.HandleDeleteAll)
	group.Get("/:title", h.HandleList)
	group.Post("/:title", h.HandleUpload)
	group.Delete("/:title", h.HandleDelete)
}

type uploadRequest struct {
	Cards []CardUpload `json:"cards"`
}

// HandleListAll returns every deck with its cards.
// @Summary List Decks
// @Tags decks
// @Produce json
// @Success 200 {array} deck.Deck
// @Failure 404 {object} map[string]string "No decks"
// @Router /decks [get]
func (h *Handler) HandleListAll(c *fiber.Ctx) error {
	decks, err := h.service.ListAllDecks(c.Context())
	if err != nil {
		return h.renderError(c, err, "Deck listing failed")
	}
	return c.JSON(decks)
}

// HandleList returns the raw card keys of one deck.
// @Summary List Deck Keys
// @Tags decks
// @Produce json
// @Param title path string true "Deck Title"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "Deck not found"
// @Router /decks/{title} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	title := c.Params("title")
	keys, err := h.service.ListDeck(c.Context(), title)
	if err != nil {
		return h.renderError(c, err, "Deck key listing failed")
	}
	return c.JSON(fiber.Map{
		"title": title,
		"keys":  keys,
	})
}

// HandleUpload stores a batch of card images.
// @Summary Upload Deck
// @Tags decks
// @Accept json
// @Produce json
// @Param title path string true "Deck Title"
// @Param request body uploadRequest true "Cards"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "Invalid card entry"
// @Router /decks/{title} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperr.BadRequest("invalid request body"), "Deck upload rejected")
	}

	count, err := h.service.UploadDeck(c.Context(), c.Params("title"), req.Cards)
	if err != nil {
		return h.renderError(c, err, "Deck upload failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "uploaded",
		"count":  count,
	})
}

// HandleDelete removes every card of one deck.
// @Summary Delete Deck
// @Tags decks
// @Produce json
// @Param title path string true "Deck Title"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "Deck not found"
// @Router /decks/{title} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteDeck(c.Context(), c.Params("title"))
	if err != nil {
		return h.renderError(c, err, "Deck delete failed")
	}
	return c.JSON(fiber.Map{
		"status":  "deleted",
		"deleted": deleted,
	})
}

// HandleDeleteAll removes every card image in the bucket.
// @Summary Delete All Decks
// @Tags decks
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "No decks"
// @Router /decks [delete]
func (h *Handler) HandleDeleteAll(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAllDecks(c.Context())
	if err != nil {
		return h.renderError(c, err, "Deck purge failed")
	}
	return c.JSON(fiber.Map{
		"status":  "deleted",
		"deleted": deleted,
	})
}

func (h *Handler) renderError(c *fiber.Ctx, err error, msg string) error {
	if apperr.KindOf(err) == apperr.KindBackend {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
		"error": apperr.PublicMessage(err),
	})
}
