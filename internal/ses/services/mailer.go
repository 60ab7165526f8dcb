package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"mealmaster.app/planner/internal/notifications"
)

type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type ResetMailerSESService struct {
	Ses    SendEmailAPI
	Source string
}

func (rm *ResetMailerSESService) NotifyReset(ctx context.Context, input notifications.ResetInput) error {
	_, err := rm.Ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{input.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(notifications.RESET_SUBJECT),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(notifications.ResetBody(input)),
				},
			},
		},
		Source: aws.String(rm.Source),
	})
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
