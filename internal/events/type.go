package events

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// EventFilter reacts to the table stream records it claims.
type EventFilter interface {
	Filter(record events.DynamoDBEventRecord) bool
	Apply(ctx context.Context, record events.DynamoDBEventRecord) error
}
