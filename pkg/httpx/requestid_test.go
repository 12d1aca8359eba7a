package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
	"github.com/Gunvolt24/order_intake/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRouter(h gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/", h)
	return r
}

func TestRequestIDMiddleware_GeneratesWhenMissing(t *testing.T) {
	var gotID string
	var ok bool

	r := newRouter(func(c *gin.Context) {
		gotID, ok = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	}, httpx.RequestIDMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rid := w.Header().Get(httpx.HeaderRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("сгенерированный X-Request-ID должен быть UUID, got=%q err=%v", rid, err)
	}
	if !ok || gotID != rid {
		t.Fatalf("request id в контексте должен совпадать с заголовком: ctx=%q ok=%v header=%q", gotID, ok, rid)
	}
}

func TestRequestIDMiddleware_UsesProvidedHeader(t *testing.T) {
	const provided = "custom-id-42"
	var gotID string

	r := newRouter(func(c *gin.Context) {
		gotID, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	}, httpx.RequestIDMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(httpx.HeaderRequestID, provided)
	r.ServeHTTP(w, req)

	if rid := w.Header().Get(httpx.HeaderRequestID); rid != provided || gotID != provided {
		t.Fatalf("middleware должен сохранять переданный X-Request-ID: header=%q ctx=%q", rid, gotID)
	}
}

func TestRequestIDMiddleware_ReplacesOversizedHeader(t *testing.T) {
	r := newRouter(func(c *gin.Context) { c.Status(http.StatusNoContent) }, httpx.RequestIDMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(httpx.HeaderRequestID, strings.Repeat("a", 500))
	r.ServeHTTP(w, req)

	if _, err := uuid.Parse(w.Header().Get(httpx.HeaderRequestID)); err != nil {
		t.Fatalf("oversized id must be replaced by UUID, got %q", w.Header().Get(httpx.HeaderRequestID))
	}
}

type recLogger struct {
	mu    sync.Mutex
	level []string
}

func (l *recLogger) add(s string) { l.mu.Lock(); l.level = append(l.level, s); l.mu.Unlock() }

func (l *recLogger) Infof(context.Context, string, ...any)  { l.add("info") }
func (l *recLogger) Warnf(context.Context, string, ...any)  { l.add("warn") }
func (l *recLogger) Errorf(context.Context, string, ...any) { l.add("error") }

func TestRequestLogger_LevelByStatus(t *testing.T) {
	for _, tc := range []struct {
		status int
		want   string
	}{
		{http.StatusOK, "info"},
		{http.StatusConflict, "warn"},
		{http.StatusInternalServerError, "error"},
	} {
		log := &recLogger{}
		status := tc.status
		r := newRouter(func(c *gin.Context) {
			httpx.AbortWithMessage(c, status, "m")
		}, httpx.RequestLogger(log))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		if w.Code != status || !strings.Contains(w.Body.String(), `"message":"m"`) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
		if len(log.level) != 1 || log.level[0] != tc.want {
			t.Fatalf("status %d: want %s log, got %v", status, tc.want, log.level)
		}
	}
}
