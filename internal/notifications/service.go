package notifications

import (
	"context"
	"fmt"
	"time"
)

type ResetInput struct {
	Email     string
	Name      string
	Link      string
	ExpiresIn time.Duration
}

type ResetNotifier interface {
	NotifyReset(ctx context.Context, input ResetInput) error
}

const RESET_SUBJECT = "Reset your MealMaster password"

func ResetBody(input ResetInput) string {
	name := input.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Follow the link below to choose a new one:\n\n%s\n\nThe link expires in %d minutes. If you did not ask for this, you can ignore this email.",
		name,
		input.Link,
		int(input.ExpiresIn.Minutes()),
	)
}
