package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"command-bridge/pkg/response"
)

func TestResponses(t *testing.T) {
	// Setup Gin test mode
	gin.SetMode(gin.TestMode)

	t.Run("OK", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		data := map[string]string{"foo": "bar"}
		response.OK(c, data)

		if w.Code != http.StatusOK {
			t.Errorf("expected %d but got %d", http.StatusOK, w.Code)
		}

		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}

		if resp.ErrorCode != 0 {
			t.Errorf("expected ErrorCode 0, got %d", resp.ErrorCode)
		}
		dMap, ok := resp.Data.(map[string]interface{})
		if !ok || dMap["foo"] != "bar" {
			t.Errorf("unexpected data payload: %v", resp.Data)
		}
	})

	errorCases := []struct {
		name    string
		send    func(c *gin.Context)
		code    int
		message string
	}{
		{"Unauthorized", response.Unauthorized, http.StatusUnauthorized, "Invalid signature"},
		{"BadRequest", response.BadRequest, http.StatusBadRequest, "Invalid JSON payload"},
		{"Forbidden", response.Forbidden, http.StatusForbidden, "Forbidden"},
		{"TooManyRequests", response.TooManyRequests, http.StatusTooManyRequests, "Rate limit exceeded"},
		{"PayloadTooLarge", response.PayloadTooLarge, http.StatusRequestEntityTooLarge, "Payload too large"},
		{"InternalError", response.InternalError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tc.send(c)

			if w.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, w.Code)
			}

			var body response.ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if body.Error != tc.message {
				t.Errorf("expected error %q, got %q", tc.message, body.Error)
			}
		})
	}
}
