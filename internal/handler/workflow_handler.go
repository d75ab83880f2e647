package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/usecase"
)

const defaultMaxArticles = 10

// WorkflowRunner executes one pipeline invocation.
type WorkflowRunner interface {
	Run(ctx context.Context, topic string, maxArticles int) (domain.RunResult, error)
}

// WorkflowHandler exposes the compliance workflow over HTTP.
type WorkflowHandler struct {
	runner WorkflowRunner
	logger *slog.Logger
}

// NewWorkflowHandler wires the pipeline into the request surface.
func NewWorkflowHandler(runner WorkflowRunner, logger *slog.Logger) *WorkflowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkflowHandler{
		runner: runner,
		logger: logger.With("component", "handler"),
	}
}

// RunWorkflow handles POST /workflow/run.
func (h *WorkflowHandler) RunWorkflow(c *gin.Context) {
	var req WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MaxArticles <= 0 {
		req.MaxArticles = defaultMaxArticles
	}

	result, err := h.runner.Run(c.Request.Context(), req.Topic, req.MaxArticles)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "No NIST updates found"})
		case errors.Is(err, usecase.ErrNoRelevantDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "No relevant articles found for IT organizations"})
		default:
			h.logger.Error("workflow failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "workflow failed"})
		}
		return
	}

	c.JSON(http.StatusOK, WorkflowResponse{
		Status:            result.Status,
		SummaryURL:        result.SummaryURL,
		PRURL:             result.PRURL,
		ArticlesProcessed: result.ArticlesProcessed,
	})
}

// GetHealth handles GET /health.
func (h *WorkflowHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GetInfo handles GET /.
func (h *WorkflowHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "NIST Compliance Scanner",
		"version":     "1.0.0",
		"description": "Automated NIST SP 800-series compliance monitoring and reporting",
		"endpoints": gin.H{
			"/workflow/run": "POST - Run the complete workflow",
			"/health":       "GET - Health check",
		},
	})
}
