package category

import (
	"card-vault/core/apperr"
	"card-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for categories.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the category routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/categories")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
}

type createRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleCreate stores a category record.
// @Summary Create Category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body createRequest true "Category"
// @Success 201 {object} category.Category
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /categories [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperr.BadRequest("invalid request body"), "Category create rejected")
	}

	if err := h.service.Create(c.Context(), req.ID, req.Name); err != nil {
		return h.renderError(c, err, "Category create failed")
	}

	return c.Status(fiber.StatusCreated).JSON(Category{ID: req.ID, Name: req.Name})
}

// HandleList returns every category.
// @Summary List Categories
// @Tags categories
// @Produce json
// @Success 200 {array} category.Category
// @Failure 404 {object} map[string]string "No categories"
// @Router /categories [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.Context())
	if err != nil {
		return h.renderError(c, err, "Category list failed")
	}
	return c.JSON(categories)
}

func (h *Handler) renderError(c *fiber.Ctx, err error, msg string) error {
	if apperr.KindOf(err) == apperr.KindBackend {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
		"error": apperr.PublicMessage(err),
	})
}
