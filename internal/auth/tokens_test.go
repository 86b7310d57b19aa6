package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/careerpath/internal/entities"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func testUser() *entities.User {
	return &entities.User{ID: uuid.New(), Username: "jane", Email: "jane@x.com", FullName: "Jane Doe"}
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	issuer, err := NewTokenIssuer(testSecret, "HS256", time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		ttl       time.Duration
		wantErr   bool
	}{
		{"HS256", testSecret, "HS256", time.Hour, false},
		{"HS384", testSecret, "HS384", time.Hour, false},
		{"HS512", testSecret, "HS512", time.Hour, false},
		{"empty algorithm defaults", testSecret, "", time.Hour, false},
		{"asymmetric algorithm", testSecret, "RS256", time.Hour, true},
		{"none algorithm", testSecret, "none", time.Hour, true},
		{"empty secret", "", "HS256", time.Hour, true},
		{"zero ttl", testSecret, "HS256", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenIssuer(tt.secret, tt.algorithm, tt.ttl)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := newTestIssuer(t)
	user := testUser()

	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.ParsedUserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := newTestIssuer(t)
	user := testUser()

	first, _, err := issuer.Issue(user)
	require.NoError(t, err)
	second, _, err := issuer.Issue(user)
	require.NoError(t, err)

	a, err := issuer.Verify(first)
	require.NoError(t, err)
	b, err := issuer.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenIssuer_Verify_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_Verify_ExpiredWithBadSignature(t *testing.T) {
	forger, err := NewTokenIssuer("a-completely-different-secret-value", "HS256", time.Hour)
	require.NoError(t, err)
	forger.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, _, err := forger.Issue(testUser())
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_Verify_InvalidSignature(t *testing.T) {
	forger, err := NewTokenIssuer("a-completely-different-secret-value", "HS256", time.Hour)
	require.NoError(t, err)

	token, _, err := forger.Issue(testUser())
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenIssuer_Verify_WrongAlgorithm(t *testing.T) {
	other, err := NewTokenIssuer(testSecret, "HS512", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenIssuer_Verify_NoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID:   uuid.NewString(),
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenIssuer_Verify_Malformed(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.@@@.###"} {
		t.Run(input, func(t *testing.T) {
			_, err := issuer.Verify(input)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestTokenIssuer_Verify_MissingExpiry(t *testing.T) {
	claims := Claims{UserID: uuid.NewString(), Username: "jane"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenIssuer_Verify_BadUserID(t *testing.T) {
	claims := Claims{
		UserID:   "42",
		Username: "jane",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestIssuer(t).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
