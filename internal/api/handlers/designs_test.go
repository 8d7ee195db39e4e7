package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"batterydesign/internal/config"

	"github.com/gin-gonic/gin"
)

func TestRunDesignRejectsMissingRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDesignsHandler(config.Default())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/designs", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RunDesign(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a request missing required fields, got %d", w.Code)
	}
}

func TestRunDesignRejectsUnreadableRequirementsPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDesignsHandler(config.Default())

	body, _ := json.Marshal(map[string]string{
		"requirements_path": "/no/such/file.yaml",
		"catalog_path":      "/no/such/catalog.yaml",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/designs", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RunDesign(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unreadable requirements file, got %d", w.Code)
	}
}
