package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/codelearn-ai/server/internal/service"
)

// AnalysisHandler wires HTTP → AnalysisService.
type AnalysisHandler struct {
	svc service.AnalysisService
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Register mounts the analysis endpoints on the supplied router group.
func (h *AnalysisHandler) Register(r fiber.Router) {
	r.Post("/analyze-repository", h.analyzeRepository)
	r.Get("/analysis/:id", h.getAnalysis)
	r.Get("/user-analyses/:user_id", h.listUserAnalyses)
}

type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
	UserID  string `json:"user_id"`
}

// analyzeRepository handles POST /analyze-repository
func (h *AnalysisHandler) analyzeRepository(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.RepoURL == "" || req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "repo_url and user_id are required")
	}

	id, err := h.svc.Submit(c.UserContext(), req.RepoURL, req.UserID)
	if errors.Is(err, service.ErrConfigurationRequired) {
		return fiber.NewError(fiber.StatusBadRequest, "AI configuration required. Please configure AI model first.")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start analysis: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"analysis_id": id,
		"status":      "queued",
		"message":     "Repository analysis started",
	})
}

// getAnalysis handles GET /analysis/:id
func (h *AnalysisHandler) getAnalysis(c *fiber.Ctx) error {
	job, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, service.ErrJobNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get analysis: "+err.Error())
	}

	// Snapshot without the owning user id.
	return c.JSON(fiber.Map{
		"id":          job.ID,
		"repo_url":    job.RepoURL,
		"status":      job.Status,
		"created_at":  job.CreatedAt,
		"flashcards":  job.Flashcards,
		"total_files": job.TotalFiles,
		"languages":   job.Languages,
		"error":       job.Error,
	})
}

// listUserAnalyses handles GET /user-analyses/:user_id
func (h *AnalysisHandler) listUserAnalyses(c *fiber.Ctx) error {
	jobs, err := h.svc.ListByUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get analyses: "+err.Error())
	}

	return c.JSON(fiber.Map{"analyses": jobs})
}
