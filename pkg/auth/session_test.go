package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestSessions(t *testing.T) *SessionService {
	t.Helper()
	s, err := NewSessionService(testSecret, "moodle", "export_quiz")
	require.NoError(t, err)
	return s
}

func TestNewSessionService_ShortSecret(t *testing.T) {
	_, err := NewSessionService("short", "", "")
	assert.Error(t, err)
}

func TestSessionService_IssueAndParse(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Issue(SessionClaims{
		UserID:       5,
		Sesskey:      "abc123",
		Courses:      []uint{3, 4},
		Capabilities: []string{"moodle/course:viewhiddenactivities"},
	}, time.Hour)
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, "moodle", claims.Issuer)

	requester := claims.Requester()
	assert.Equal(t, uint(5), requester.UserID)
	assert.Equal(t, []uint{3, 4}, requester.CourseIDs)
	assert.Equal(t, "abc123", requester.Sesskey)
	assert.True(t, requester.CanAccessCourse(3))
}

func TestSessionService_ParseErrors(t *testing.T) {
	s := newTestSessions(t)

	_, err := s.Parse("")
	assert.ErrorIs(t, err, ErrSessionMissing)

	_, err = s.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrSessionInvalid)

	expired, err := s.Issue(SessionClaims{UserID: 5, Sesskey: "abc"}, -time.Minute)
	require.NoError(t, err)
	_, err = s.Parse(expired)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Подпись другим секретом
	other, err := NewSessionService("another-secret-of-32-bytes-long!", "moodle", "export_quiz")
	require.NoError(t, err)
	forged, err := other.Issue(SessionClaims{UserID: 5, Sesskey: "abc"}, time.Hour)
	require.NoError(t, err)
	_, err = s.Parse(forged)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// Другая аудитория
	foreign, err := NewSessionService(testSecret, "moodle", "gradebook")
	require.NoError(t, err)
	token, err := foreign.Issue(SessionClaims{UserID: 5, Sesskey: "abc"}, time.Hour)
	require.NoError(t, err)
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// Без sesskey
	token, err = s.Issue(SessionClaims{UserID: 5}, time.Hour)
	require.NoError(t, err)
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionService_RejectsOtherAlgorithms(t *testing.T) {
	s := newTestSessions(t)

	claims := SessionClaims{UserID: 5, Sesskey: "abc"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestCheckSesskey(t *testing.T) {
	assert.True(t, CheckSesskey("abc", "abc"))
	assert.False(t, CheckSesskey("abc", "abd"))
	assert.False(t, CheckSesskey("abc", ""))
	assert.False(t, CheckSesskey("", ""))
}
