package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"command-bridge/pkg/log"
	"command-bridge/pkg/response"
)

func setupEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop())

	r := gin.New()
	r.Use(mw.Recovery(), mw.RequestID(), mw.AccessLog())
	r.GET("/id", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(log.RequestIDKey).(string)
		c.String(http.StatusOK, id)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	r := setupEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := w.Header().Get(HeaderRequestID)
	if got == "" {
		t.Fatal("expected a generated request id header")
	}
	if w.Body.String() != got {
		t.Errorf("context id %q does not match header %q", w.Body.String(), got)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r := setupEngine()

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(HeaderRequestID) != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("expected caller id to be kept, got header=%q body=%q", w.Header().Get(HeaderRequestID), w.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	r := setupEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body response.ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Error != response.MsgInternalError {
		t.Errorf("unexpected error %q", body.Error)
	}
}
