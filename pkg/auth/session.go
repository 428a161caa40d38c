package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// Ошибки проверки сессии
var (
	ErrSessionMissing = errors.New("session token missing")
	ErrSessionInvalid = errors.New("session token invalid")
	ErrSessionExpired = errors.New("session token is expired")
)

// SessionClaims are issued by the host platform when it hands a logged-in
// user over to the export service.
type SessionClaims struct {
	UserID       uint     `json:"uid"`
	Sesskey      string   `json:"sesskey"`
	Courses      []uint   `json:"courses"`
	Capabilities []string `json:"caps,omitempty"`
	jwt.RegisteredClaims
}

// Requester превращает claims в пользователя экспорта
func (c *SessionClaims) Requester() entity.Requester {
	return entity.Requester{
		UserID:       c.UserID,
		CourseIDs:    c.Courses,
		Capabilities: c.Capabilities,
		Sesskey:      c.Sesskey,
	}
}

// SessionService проверяет токены сессии хоста, подписанные общим секретом (HS256)
type SessionService struct {
	secret   []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// NewSessionService создает сервис сессий. Пустой issuer/audience не проверяется.
func NewSessionService(secret, issuer, audience string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("session secret must be at least 16 bytes")
	}
	return &SessionService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Parse validates a session token and returns its claims.
func (s *SessionService) Parse(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrSessionMissing
	}

	claims := &SessionClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			switch {
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				log.Printf("[Session] Token expired for user ID=%d", claims.UserID)
				return nil, ErrSessionExpired
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, fmt.Errorf("%w: malformed", ErrSessionInvalid)
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				log.Printf("[Session] Invalid signature for user ID=%d", claims.UserID)
				return nil, fmt.Errorf("%w: signature", ErrSessionInvalid)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if !token.Valid {
		return nil, ErrSessionInvalid
	}

	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: issuer", ErrSessionInvalid)
	}
	if s.audience != "" && !claims.VerifyAudience(s.audience, true) {
		return nil, fmt.Errorf("%w: audience", ErrSessionInvalid)
	}
	if claims.UserID == 0 || claims.Sesskey == "" {
		return nil, fmt.Errorf("%w: user or sesskey missing", ErrSessionInvalid)
	}
	return claims, nil
}

// Issue signs a session token. The host normally issues these; the service
// uses it for the CLI and tests.
func (s *SessionService) Issue(claims SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if s.issuer != "" {
		claims.Issuer = s.issuer
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// CheckSesskey compares the anti-forgery token of a request with the session's.
func CheckSesskey(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
