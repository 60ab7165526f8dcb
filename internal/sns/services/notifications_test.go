package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"mealmaster.app/planner/internal/notifications"
)

type RecordingSNS struct {
	Published []*sns.PublishInput
}

func (rs *RecordingSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	rs.Published = append(rs.Published, params)
	return &sns.PublishOutput{MessageId: aws.String("message-1")}, nil
}

func TestNotifyReset(t *testing.T) {
	client := &RecordingSNS{}
	service := &NotificationSNSService{
		Sns:         client,
		TopicArn:    "arn:aws:sns:us-east-1:123456789012:resets",
		RelaySecret: "relay-secret",
	}
	err := service.NotifyReset(context.Background(), notifications.ResetInput{
		Email:     "ada@example.com",
		Name:      "Ada",
		Link:      "http://localhost:5173/reset-password?token=abc",
		ExpiresIn: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	published := client.Published[0]
	if aws.ToString(published.TopicArn) != service.TopicArn {
		t.Fatalf("Expected topic %s, but got %s", service.TopicArn, aws.ToString(published.TopicArn))
	}
	if aws.ToString(published.MessageAttributes["email"].StringValue) != "ada@example.com" {
		t.Fatalf("Expected email attribute, but got %v", published.MessageAttributes)
	}
	body := aws.ToString(published.Message)
	if strings.Contains(body, "token=abc") {
		t.Fatalf("Expected the reset link to stay sealed, but got %s", body)
	}
	var message ResetMessage
	if err := json.Unmarshal([]byte(body), &message); err != nil {
		t.Fatalf("Expected a json message, but got %v", err)
	}
	if message.ExpiresIn != 15 || message.Email != "ada@example.com" {
		t.Fatalf("Expected email and lifetime, but got %v", message)
	}
	if _, err := Open("another-secret", message.Sealed); !errors.Is(err, ErrUnsealable) {
		t.Fatalf("Expected a foreign secret to fail, but got %v", err)
	}
	secret, err := Open(service.RelaySecret, message.Sealed)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if secret.Link != "http://localhost:5173/reset-password?token=abc" || !strings.Contains(secret.Body, secret.Link) {
		t.Fatalf("Expected the link and body to open, but got %v", secret)
	}
}
