package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uofr/moodle-block-export-quiz/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.SessionService) {
	t.Helper()
	sessions, err := auth.NewSessionService("0123456789abcdef0123456789abcdef", "", "")
	require.NoError(t, err)

	mw := NewSessionMiddleware(sessions, "MoodleExportSession")
	router := gin.New()
	router.Use(RequestID())
	router.GET("/protected", mw.RequireSession(), func(c *gin.Context) {
		requester, ok := GetRequester(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": requester.UserID})
	})
	router.GET("/download", mw.RequireSession(), mw.RequireSesskey(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/courses/:courseid", ExtractUintParam("courseid", "courseid"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"courseid": c.GetUint("courseid")})
	})
	return router, sessions
}

func issue(t *testing.T, sessions *auth.SessionService) string {
	t.Helper()
	token, err := sessions.Issue(auth.SessionClaims{UserID: 5, Sesskey: "abc", Courses: []uint{3}}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRequireSession(t *testing.T) {
	router, sessions := newTestRouter(t)
	token := issue(t, sessions)

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
	}{
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantStatus: http.StatusOK},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "MoodleExportSession", Value: token}) }, wantStatus: http.StatusOK},
		{name: "missing", setup: func(r *http.Request) {}, wantStatus: http.StatusUnauthorized},
		{name: "bad format", setup: func(r *http.Request) { r.Header.Set("Authorization", "Token "+token) }, wantStatus: http.StatusUnauthorized},
		{name: "garbage", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") }, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRequireSesskey(t *testing.T) {
	router, sessions := newTestRouter(t)
	token := issue(t, sessions)

	for query, want := range map[string]int{
		"?sesskey=abc":   http.StatusNoContent,
		"?sesskey=wrong": http.StatusForbidden,
		"":               http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/download"+query, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, query)
	}
}

func TestExtractUintParam(t *testing.T) {
	router, _ := newTestRouter(t)

	for path, want := range map[string]int{
		"/courses/3":   http.StatusOK,
		"/courses/0":   http.StatusBadRequest,
		"/courses/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRequestID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/3", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	// Валидный ID клиента сохраняется, мусор заменяется
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/courses/3", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/courses/3", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter_WithoutRedisAllowsAll(t *testing.T) {
	router := gin.New()
	router.GET("/limited", NewRateLimiter(nil).Limit(ExportRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestExportRateLimitConfig_Defaults(t *testing.T) {
	cfg := ExportRateLimitConfig(0, 0)
	assert.Equal(t, 30, cfg.MaxRequests)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, "rl:export", cfg.KeyPrefix)
}
