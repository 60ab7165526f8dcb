package config

import (
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "MealPlannerData")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SES_EMAIL", "noreply@example.com")
		config := FromEnv()
		if err := config.Validate(); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if config.Storage.IndexName != "GS1" {
			t.Fatalf("Expected GS1, but got %s", config.Storage.IndexName)
		}
		if config.Security.TokenTTL() != 24*time.Hour || config.Security.ResetTTL() != 15*time.Minute {
			t.Fatalf("Expected default lifetimes, but got %v %v", config.Security.TokenTTL(), config.Security.ResetTTL())
		}
		if config.Reset.URL != "http://localhost:5173/reset-password" || config.Reset.Delivery != DELIVERY_SES {
			t.Fatalf("Expected default reset settings, but got %v", config.Reset)
		}
		if config.Logging.Level != "info" || config.Logging.Format != "json" || config.Security.CorsOrigin != "*" {
			t.Fatalf("Expected default logging, but got %v", config.Logging)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "MealPlannerData")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "2")
		t.Setenv("RESET_TOKEN_MINUTES", "not-a-number")
		t.Setenv("RESET_DELIVERY", DELIVERY_SNS)
		t.Setenv("TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:resets")
		if err := FromEnv().Validate(); err == nil {
			t.Fatal("Expected sns delivery without a relay secret to fail")
		}
		t.Setenv("RESET_RELAY_SECRET", "relay-secret")
		config := FromEnv()
		if err := config.Validate(); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if config.Security.JWTExpirationHours != 2 || config.Security.ResetTokenMinutes != 15 {
			t.Fatalf("Expected 2 hours and a fallback of 15 minutes, but got %v", config.Security)
		}
	})

	t.Run("Required", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "")
		t.Setenv("JWT_SECRET", "secret")
		if err := FromEnv().Validate(); err == nil {
			t.Fatal("Expected a missing table to fail")
		}
		t.Setenv("TABLE_NAME", "MealPlannerData")
		t.Setenv("JWT_SECRET", "")
		if err := FromEnv().Validate(); err == nil {
			t.Fatal("Expected a missing secret to fail")
		}
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("RESET_DELIVERY", "pigeon")
		if err := FromEnv().Validate(); err == nil {
			t.Fatal("Expected an unknown delivery to fail")
		}
	})
}

func TestLoadFor(t *testing.T) {
	t.Setenv("TABLE_NAME", "MealPlannerData")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SES_EMAIL", "")
	config, err := LoadFor((*Config).ValidateStorage)
	if err != nil {
		t.Fatalf("Expected storage only checks to pass, but got %v", err)
	}
	if config.Storage.TableName != "MealPlannerData" {
		t.Fatalf("Expected the table name to load, but got %s", config.Storage.TableName)
	}
	if _, err := LoadFor((*Config).ValidateStorage, (*Config).ValidateSecurity); err == nil {
		t.Fatal("Expected the security checks to reject a missing secret")
	}
}
