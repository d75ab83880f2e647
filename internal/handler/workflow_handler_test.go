package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/logging"
	"ComplianceScanner/internal/usecase"
)

type fakeRunner struct {
	result      domain.RunResult
	err         error
	topic       string
	maxArticles int
}

func (f *fakeRunner) Run(ctx context.Context, topic string, maxArticles int) (domain.RunResult, error) {
	f.topic = topic
	f.maxArticles = maxArticles
	return f.result, f.err
}

func newTestRouter(runner WorkflowRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWorkflowHandler(runner, logging.Discard())
	r.POST("/workflow/run", h.RunWorkflow)
	r.GET("/health", h.GetHealth)
	r.GET("/", h.GetInfo)
	return r
}

func TestRunWorkflow_Success(t *testing.T) {
	runner := &fakeRunner{
		result: domain.RunResult{
			Status:            "success",
			SummaryURL:        "https://github.com/org/repo/blob/b/report.md",
			PRURL:             "https://github.com/org/repo/pull/7",
			ArticlesProcessed: 3,
		},
	}

	r := newTestRouter(runner)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"topic":"ssdf","max_articles":3}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ssdf", runner.topic)
	assert.Equal(t, 3, runner.maxArticles)

	var resp WorkflowResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 3, resp.ArticlesProcessed)
	assert.Equal(t, "https://github.com/org/repo/pull/7", resp.PRURL)
}

func TestRunWorkflow_DefaultsMaxArticles(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{Status: "success"}}

	r := newTestRouter(runner)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultMaxArticles, runner.maxArticles)
}

func TestRunWorkflow_NoUpdatesFound(t *testing.T) {
	runner := &fakeRunner{err: usecase.ErrNoDocuments}

	r := newTestRouter(runner)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"max_articles":5}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	if !strings.Contains(w.Body.String(), "No NIST updates found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRunWorkflow_NoRelevantArticles(t *testing.T) {
	runner := &fakeRunner{err: usecase.ErrNoRelevantDocuments}

	r := newTestRouter(runner)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"max_articles":5}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	if !strings.Contains(w.Body.String(), "No relevant articles found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRunWorkflow_InternalError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("wiring exploded")}

	r := newTestRouter(runner)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"max_articles":5}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail must not leak to the caller.
	if strings.Contains(w.Body.String(), "wiring exploded") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

func TestRunWorkflow_InternalErrorLogsThroughInjectedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := gin.New()
	h := NewWorkflowHandler(&fakeRunner{err: errors.New("wiring exploded")}, logger)
	r.POST("/workflow/run", h.RunWorkflow)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"max_articles":5}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	if !strings.Contains(logs.String(), "workflow failed") {
		t.Fatalf("expected error logged via injected logger, got: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "component=handler") {
		t.Fatalf("expected component attribute in log, got: %s", logs.String())
	}
}

func TestRunWorkflow_BadRequestBody(t *testing.T) {
	r := newTestRouter(&fakeRunner{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/workflow/run", strings.NewReader(`{"max_articles":"three"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeRunner{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetInfo(t *testing.T) {
	r := newTestRouter(&fakeRunner{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), "/workflow/run") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
