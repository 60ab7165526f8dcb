package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"golang.org/x/crypto/nacl/secretbox"
	"mealmaster.app/planner/internal/notifications"
)

type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// ResetMessage is what subscribers of the reset topic receive. The link and
// the mail body only travel sealed, so a subscriber without the relay secret
// learns who asked for a reset but cannot use it.
type ResetMessage struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresIn int    `json:"expiresInMinutes"`
	Sealed    string `json:"sealed"`
}

// ResetSecret is the sealed part of a ResetMessage.
type ResetSecret struct {
	Link string `json:"link"`
	Body string `json:"body"`
}

var ErrUnsealable = errors.New("reset message cannot be opened with this secret")

func _key(secret string) *[32]byte {
	key := sha256.Sum256([]byte(secret))
	return &key
}

// Seal encrypts the secret part with a key derived from the relay secret.
func Seal(relaySecret string, secret ResetSecret) (string, error) {
	plaintext, err := json.Marshal(secret)
	if err != nil {
		return "", err
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, _key(relaySecret))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open is the relay side of Seal.
func Open(relaySecret string, sealed string) (ResetSecret, error) {
	var secret ResetSecret
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return secret, ErrUnsealable
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plaintext, ok := secretbox.Open(nil, raw[24:], &nonce, _key(relaySecret))
	if !ok {
		return secret, ErrUnsealable
	}
	err = json.Unmarshal(plaintext, &secret)
	return secret, err
}

type NotificationSNSService struct {
	Sns         PublishAPI
	TopicArn    string
	RelaySecret string
}

func (n *NotificationSNSService) NotifyReset(ctx context.Context, input notifications.ResetInput) error {
	sealed, err := Seal(n.RelaySecret, ResetSecret{
		Link: input.Link,
		Body: notifications.ResetBody(input),
	})
	if err != nil {
		return err
	}
	message, err := json.Marshal(ResetMessage{
		Email:     input.Email,
		Name:      input.Name,
		ExpiresIn: int(input.ExpiresIn.Minutes()),
		Sealed:    sealed,
	})
	if err != nil {
		return err
	}
	_, err = n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String(notifications.RESET_SUBJECT),
		Message:  aws.String(string(message)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"email": {
				DataType:    aws.String("String"),
				StringValue: aws.String(input.Email),
			},
		},
	})
	return err
}
