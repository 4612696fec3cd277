package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing row", fmt.Errorf("Lesson %s %w", uuid.New(), services.ErrNotFound), http.StatusNotFound},
		{"wrapped missing row", fmt.Errorf("outline: %w", fmt.Errorf("Lesson %s %w", uuid.New(), services.ErrNotFound)), http.StatusNotFound},
		{"caller error", fmt.Errorf("Lesson title must not be empty"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondServiceError(c, "lesson_failed", tc.err)
		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}
