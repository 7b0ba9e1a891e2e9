package util

import (
	"bookquiz_backend/internal/model"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	user := &model.User{Email: "reader@example.com", Role: model.Reader}
	user.ID = 42

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "reader@example.com" || claims.Role != model.Reader {
		t.Errorf("claims = %+v, want original user", claims)
	}

	if _, err := ParseJWT(token, "wrong-secret-wrong-secret-wrong!"); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestJWTExpired(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	user := &model.User{}
	user.ID = 1

	token, err := GenerateJWT(user, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, secret); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestDuplicateAttemptError(t *testing.T) {
	err := error(&DuplicateAttemptError{UserID: 1, QuizID: 7, AttemptNumber: 3})

	var dup *DuplicateAttemptError
	if !errors.As(err, &dup) {
		t.Fatal("errors.As should match DuplicateAttemptError")
	}
	if dup.AttemptNumber != 3 {
		t.Errorf("attemptNumber = %d, want 3", dup.AttemptNumber)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("message %q should name the contended attempt number", err.Error())
	}
}

func TestParsePageLimit(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 20},
		{"2", "50", 2, 50},
		{"0", "-5", 1, 20},
		{"abc", "xyz", 1, 20},
		{"3", "500", 3, 20},
	}
	for _, tt := range tests {
		page, limit := ParsePageLimit(tt.page, tt.limit)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("ParsePageLimit(%q, %q) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}
