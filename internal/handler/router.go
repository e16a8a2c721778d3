package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codelearn-ai/server/internal/service"
)

// RegisterRoutes mounts every endpoint under the /api prefix.
func RegisterRoutes(app *fiber.App,
	configs service.ConfigRepository,
	analysisSvc service.AnalysisService,
) {
	api := app.Group("/api")
	NewHealthHandler().Register(api)
	NewConfigHandler(configs).Register(api)
	NewAnalysisHandler(analysisSvc).Register(api)
}
