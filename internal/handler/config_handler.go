package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codelearn-ai/server/internal/models"
	"github.com/codelearn-ai/server/internal/service"
)

// ConfigHandler wires HTTP → the configuration store and model catalog.
type ConfigHandler struct {
	configs service.ConfigRepository
}

// NewConfigHandler creates a ConfigHandler.
func NewConfigHandler(configs service.ConfigRepository) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// Register mounts the catalog and configuration endpoints on the supplied
// router group.
func (h *ConfigHandler) Register(r fiber.Router) {
	r.Get("/ai-models", h.listModels)
	r.Post("/ai-config", h.saveConfig)
	r.Get("/ai-config/:user_id", h.getConfig)
}

// listModels handles GET /ai-models
func (h *ConfigHandler) listModels(c *fiber.Ctx) error {
	return c.JSON(models.Catalog())
}

type aiConfigRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	UserID   string `json:"user_id"`
}

// saveConfig handles POST /ai-config
func (h *ConfigHandler) saveConfig(c *fiber.Ctx) error {
	var req aiConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	// Reject unknown (provider, model) pairs before anything is written.
	if !models.ValidModel(req.Provider, req.Model) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid AI model selection")
	}

	cfg := models.AIConfig{
		UserID:    req.UserID,
		Provider:  req.Provider,
		Model:     req.Model,
		APIKey:    req.APIKey,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.configs.Upsert(c.UserContext(), cfg); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save configuration: "+err.Error())
	}

	return c.JSON(fiber.Map{"message": "AI configuration saved successfully"})
}

// getConfig handles GET /ai-config/:user_id
func (h *ConfigHandler) getConfig(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	cfg, err := h.configs.FindByUser(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get configuration: "+err.Error())
	}
	if cfg.UserID == "" {
		return c.JSON(fiber.Map{"configured": false})
	}

	return c.JSON(fiber.Map{
		"configured": true,
		"provider":   cfg.Provider,
		"model":      cfg.Model,
		"model_name": models.ModelName(cfg.Provider, cfg.Model),
	})
}
