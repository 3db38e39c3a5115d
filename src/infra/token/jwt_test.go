package token

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jokebox/src/core/domain"
	"jokebox/src/infra/config"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret: "test-secret",
		TokenTTL:    time.Hour,
		TokenIssuer: "jokebox-test",
	}
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	svc := NewJWT(testConfig())
	user := &domain.User{ID: 42, Username: "alice"}

	signed, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token string")
	}

	userID, err := svc.Parse(signed)
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected user id %d, got %d", user.ID, userID)
	}
}

func TestParse_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTL = -time.Minute
	svc := NewJWT(cfg)

	signed, err := svc.Issue(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := svc.Parse(signed); !domain.IsUnauthorized(err) {
		t.Errorf("expected unauthorized for expired token, got: %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	svc := NewJWT(testConfig())
	signed, _ := svc.Issue(&domain.User{ID: 7})

	other := testConfig()
	other.TokenSecret = "different-secret"
	if _, err := NewJWT(other).Parse(signed); !domain.IsUnauthorized(err) {
		t.Errorf("expected unauthorized for wrong secret, got: %v", err)
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	other := testConfig()
	other.TokenIssuer = "someone-else"

	token, err := NewJWT(other).Issue(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := NewJWT(testConfig()).Parse(token); !domain.IsUnauthorized(err) {
		t.Errorf("expected unauthorized for wrong issuer, got: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	svc := NewJWT(testConfig())

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Parse(tokenString); !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized for %q, got: %v", tokenString, err)
		}
	}
}

// A structurally valid, correctly signed token whose subject is not a user id
// must be rejected as unauthenticated, never crash.
func TestParse_NonNumericSubject(t *testing.T) {
	cfg := testConfig()
	svc := NewJWT(cfg)

	for _, subject := range []string{"alice", "", "-3", "0"} {
		now := time.Now()
		claims := &jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.TokenSecret))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}

		if _, err := svc.Parse(signed); !domain.IsUnauthorized(err) {
			t.Errorf("subject %q: expected unauthorized, got: %v", subject, err)
		}
	}
}

func TestIssue_SubjectIsStringifiedID(t *testing.T) {
	cfg := testConfig()
	svc := NewJWT(cfg)

	signed, err := svc.Issue(&domain.User{ID: 123})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(cfg.TokenSecret), nil
	})
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	subject, _ := parsed.Claims.GetSubject()
	if subject != strconv.FormatInt(123, 10) {
		t.Errorf("expected subject '123', got %q", subject)
	}
}
