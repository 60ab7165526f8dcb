package notifications

import (
	"strings"
	"testing"
	"time"
)

func TestResetBody(t *testing.T) {
	body := ResetBody(ResetInput{
		Email:     "ada@example.com",
		Name:      "Ada",
		Link:      "http://localhost:5173/reset-password?token=abc",
		ExpiresIn: 15 * time.Minute,
	})
	if !strings.Contains(body, "Hi Ada") || !strings.Contains(body, "token=abc") || !strings.Contains(body, "15 minutes") {
		t.Fatalf("Expected greeting, link and lifetime, but got %s", body)
	}
	if body := ResetBody(ResetInput{}); !strings.HasPrefix(body, "Hi there") {
		t.Fatalf("Expected a generic greeting, but got %s", body)
	}
}
