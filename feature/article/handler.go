package article

import (
	"encoding/json"

	"card-vault/core/apperr"
	"card-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for articles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the article routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/articles")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:title", h.HandleGet)
	group.Put("/:title", h.HandleUpdate)
	group.Delete("/:title", h.HandleDelete)
}

type createRequest struct {
	Title    string          `json:"title"`
	Content  json.RawMessage `json:"content"`
	Password string          `json:"password"`
}

type updateRequest struct {
	Password string          `json:"password"`
	Content  json.RawMessage `json:"content"`
}

type deleteRequest struct {
	Password string `json:"password"`
}

// HandleCreate creates a new article.
// @Summary Create Article
// @Description Create a password-protected article. The title is the identity.
// @Tags articles
// @Accept json
// @Produce json
// @Param request body createRequest true "Article"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Article already exists"
// @Router /articles [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperr.BadRequest("invalid request body"), "Article create rejected")
	}

	if err := h.service.Create(c.Context(), req.Title, req.Content, req.Password); err != nil {
		return h.renderError(c, err, "Article create failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "created",
		"id":     req.Title,
	})
}

// HandleList returns every article.
// @Summary List Articles
// @Tags articles
// @Produce json
// @Success 200 {array} article.Article
// @Failure 404 {object} map[string]string "No articles"
// @Router /articles [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	articles, err := h.service.List(c.Context())
	if err != nil {
		return h.renderError(c, err, "Article list failed")
	}
	return c.JSON(articles)
}

// HandleGet returns a single article's content.
// @Summary Get Article
// @Tags articles
// @Produce json
// @Param title path string true "Article Title"
// @Success 200 {object} article.Article
// @Failure 404 {object} map[string]string "Not Found"
// @Router /articles/{title} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	art, err := h.service.Get(c.Context(), c.Params("title"))
	if err != nil {
		return h.renderError(c, err, "Article fetch failed")
	}
	return c.JSON(art)
}

// HandleUpdate replaces an article's content after verifying its password.
// @Summary Update Article
// @Tags articles
// @Accept json
// @Produce json
// @Param title path string true "Article Title"
// @Param request body updateRequest true "Update"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string "Invalid password"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 412 {object} map[string]string "Needs migration"
// @Router /articles/{title} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperr.BadRequest("invalid request body"), "Article update rejected")
	}

	version, err := h.service.Update(c.Context(), c.Params("title"), req.Password, req.Content)
	if err != nil {
		return h.renderError(c, err, "Article update failed")
	}

	return c.JSON(fiber.Map{
		"status":  "updated",
		"id":      c.Params("title"),
		"version": version,
	})
}

// HandleDelete removes an article after verifying its password.
// @Summary Delete Article
// @Tags articles
// @Accept json
// @Produce json
// @Param title path string true "Article Title"
// @Param request body deleteRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Invalid password"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /articles/{title} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderError(c, apperr.BadRequest("invalid request body"), "Article delete rejected")
	}

	if err := h.service.Delete(c.Context(), c.Params("title"), req.Password); err != nil {
		return h.renderError(c, err, "Article delete failed")
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *Handler) renderError(c *fiber.Ctx, err error, msg string) error {
	if apperr.KindOf(err) == apperr.KindBackend {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
		"error": apperr.PublicMessage(err),
	})
}
