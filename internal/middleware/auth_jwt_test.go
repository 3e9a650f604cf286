package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	mw "app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func testConfig() config.Config {
	return config.Config{JWTSecret: testSecret}
}

// テスト用のJWTを作る
func mustMakeJWT(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(sub string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(15 * time.Minute).Unix(),
	}
}

// AuthJWTを通した後のhandlerはcontextのuser_idをそのまま返す
func runRequest(t *testing.T, authzHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		uid, _ := c.Get(mw.CtxUserIDKey).(string)
		return c.JSON(http.StatusOK, map[string]string{"user_id": uid})
	}, mw.AuthJWT(testConfig()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authzHeader != "" {
		req.Header.Set("Authorization", authzHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestAuthJWT_NoHeader(t *testing.T) {
	rec := runRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, rec)["error"])
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec := runRequest(t, "Basic abcdef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_EmptyToken(t *testing.T) {
	rec := runRequest(t, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	token := mustMakeJWT(t, "wrong-secret", jwt.SigningMethodHS256, validClaims("u-1"))
	rec := runRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSigningMethod(t *testing.T) {
	token := mustMakeJWT(t, testSecret, jwt.SigningMethodHS512, validClaims("u-1"))
	rec := runRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "u-1",
		"iat": time.Now().Add(-time.Hour).Unix(),
		"exp": time.Now().Add(-30 * time.Minute).Unix(),
	}
	token := mustMakeJWT(t, testSecret, jwt.SigningMethodHS256, claims)
	rec := runRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingSub(t *testing.T) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}
	token := mustMakeJWT(t, testSecret, jwt.SigningMethodHS256, claims)
	rec := runRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Success(t *testing.T) {
	token := mustMakeJWT(t, testSecret, jwt.SigningMethodHS256, validClaims("u-1"))
	rec := runRequest(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", decodeBody(t, rec)["user_id"])
}
