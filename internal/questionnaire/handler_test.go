package questionnaire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetQuestionnaire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler().RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questionnaire", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		TotalSteps int    `json:"totalSteps"`
		Steps      []Step `json:"steps"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.TotalSteps != 5 || len(payload.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d/%d", payload.TotalSteps, len(payload.Steps))
	}
	if payload.Steps[2].Field != "blockchain" || payload.Steps[2].Options[6].Label != "NEAR" {
		t.Fatalf("unexpected blockchain step: %+v", payload.Steps[2])
	}
}
