package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
)

const testSecret = "test-secret-at-least-16-chars"

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{JWTSecret: testSecret, Issuer: "foritu-auth"})
}

// 以外部身份服务的方式签发测试 Token
func signToken(t *testing.T, secret, userID, issuer string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtv5.RegisteredClaims{
			IssuedAt:  jwtv5.NewNumericDate(time.Now()),
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
			Issuer:    issuer,
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("签发测试 Token 失败: %v", err)
	}
	return token
}

func TestParseToken_Valid(t *testing.T) {
	mgr := newTestManager()
	token := signToken(t, testSecret, "user-001", "foritu-auth", time.Now().Add(time.Hour))

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("合法 Token 解析应成功: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("期望 UserID=user-001，实际=%s", claims.UserID)
	}
}

func TestParseToken_Expired(t *testing.T) {
	mgr := newTestManager()
	token := signToken(t, testSecret, "user-001", "foritu-auth", time.Now().Add(-time.Hour))

	_, err := mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	mgr := newTestManager()
	token := signToken(t, "another-secret-16-chars!", "user-001", "foritu-auth", time.Now().Add(time.Hour))

	_, err := mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	mgr := newTestManager()
	token := signToken(t, testSecret, "user-001", "baska-issuer", time.Now().Add(time.Hour))

	_, err := mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("签发方不符应拒绝，实际: %v", err)
	}
}

func TestParseToken_MissingUserID(t *testing.T) {
	mgr := newTestManager()
	token := signToken(t, testSecret, "", "foritu-auth", time.Now().Add(time.Hour))

	_, err := mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("缺少 user_id 应拒绝，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	mgr := newTestManager()
	_, err := mgr.ParseToken("bozuk.token.degeri")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
