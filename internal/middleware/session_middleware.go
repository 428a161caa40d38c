package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/pkg/auth"
)

// RequesterKey - ключ контекста Gin для entity.Requester
const RequesterKey = "requester"

// SessionMiddleware проверяет сессию хоста для маршрутов блока и экспорта
type SessionMiddleware struct {
	sessions   *auth.SessionService
	cookieName string
}

// NewSessionMiddleware создает middleware сессии
func NewSessionMiddleware(sessions *auth.SessionService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName}
}

// RequireSession reads the session token from the cookie or a Bearer header
// and stores the requester in the context.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.tokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			return
		}

		claims, err := m.sessions.Parse(token)
		if err != nil {
			errorType := "token_invalid"
			switch {
			case errors.Is(err, auth.ErrSessionMissing):
				errorType = "token_missing"
			case errors.Is(err, auth.ErrSessionExpired):
				errorType = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session", "error_type": errorType})
			return
		}

		c.Set(RequesterKey, claims.Requester())
		c.Next()
	}
}

// RequireSesskey checks the sesskey parameter against the session. Must run
// after RequireSession.
func (m *SessionMiddleware) RequireSesskey() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := GetRequester(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
			return
		}

		got := c.Query("sesskey")
		if got == "" {
			got = c.PostForm("sesskey")
		}
		if !auth.CheckSesskey(requester.Sesskey, got) {
			log.Printf("[Session] Invalid sesskey for user %d, path %s", requester.UserID, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid sesskey", "error_type": "invalidsesskey"})
			return
		}
		c.Next()
	}
}

// tokenFromRequest возвращает токен из куки, иначе из заголовка Authorization.
// false означает неверный формат заголовка.
func (m *SessionMiddleware) tokenFromRequest(c *gin.Context) (string, bool) {
	if m.cookieName != "" {
		if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
			return cookie, true
		}
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", true
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// GetRequester достает пользователя, сохраненный RequireSession
func GetRequester(c *gin.Context) (entity.Requester, bool) {
	value, exists := c.Get(RequesterKey)
	if !exists {
		return entity.Requester{}, false
	}
	requester, ok := value.(entity.Requester)
	return requester, ok
}
