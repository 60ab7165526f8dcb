package events

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/data"
)

const USER_PARTITION = data.GLOBAL_ACCOUNT + ":User"

// ReleaseUserEmailHandler frees the email reservation of a removed user so
// the address can register again.
type ReleaseUserEmailHandler struct {
	Users data.UserRepository
}

func (rh *ReleaseUserEmailHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "REMOVE" {
		return false
	}
	return _stringAttribute(record.Change.OldImage, "PK") == USER_PARTITION
}

func (rh *ReleaseUserEmailHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	email := _stringAttribute(record.Change.OldImage, "email")
	if email == "" {
		return nil
	}
	return rh.Users.ReleaseEmail(ctx, email, _stringAttribute(record.Change.OldImage, "SK"))
}

func DefaultUserHandler(db data.UserRepository) *ReleaseUserEmailHandler {
	return &ReleaseUserEmailHandler{
		Users: db,
	}
}
