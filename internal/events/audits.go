package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"mealmaster.app/planner/internal/data"
)

// Five years for things to expire
const EXPIRY_LOG = time.Hour * 24 * 365 * 5

// AuditMessageFormat names the owner of a changed item and describes the
// change. An empty owner skips the record.
type AuditMessageFormat func(record events.DynamoDBEventRecord) (owner string, message string)

func _getRecordImage(record events.DynamoDBEventRecord) map[string]events.DynamoDBAttributeValue {
	if record.Change.NewImage != nil {
		return record.Change.NewImage
	} else {
		return record.Change.OldImage
	}
}

func _stringAttribute(image map[string]events.DynamoDBAttributeValue, name string) string {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeString {
		return ""
	}
	return value.String()
}

func _pastTense(eventName string) string {
	switch eventName {
	case "INSERT":
		return "created"
	case "MODIFY":
		return "updated"
	case "REMOVE":
		return "deleted"
	}
	return ""
}

func _auditAction(eventName string) string {
	return strings.ToUpper(_pastTense(eventName))
}

func _formatRecipe(record events.DynamoDBEventRecord) (string, string) {
	image := _getRecordImage(record)
	name := _stringAttribute(image, "name")
	id := _stringAttribute(image, "SK")
	return _stringAttribute(image, "createdBy"), fmt.Sprintf("Recipe %s (%s) was %s", id, name, _pastTense(record.EventName))
}

func _formatMealPlan(record events.DynamoDBEventRecord) (string, string) {
	image := _getRecordImage(record)
	date := _stringAttribute(image, "date")
	mealType := _stringAttribute(image, "mealType")
	id := _stringAttribute(image, "SK")
	return _stringAttribute(image, "userId"), fmt.Sprintf("Meal plan entry %s (%s %s) was %s", id, date, mealType, _pastTense(record.EventName))
}

type CreateAuditEntryHandler struct {
	Audit   data.AuditRepository
	Formats map[string]AuditMessageFormat
	Now     func() time.Time
}

func _resourceType(record events.DynamoDBEventRecord) string {
	parts := strings.SplitN(_stringAttribute(_getRecordImage(record), "PK"), ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func (ch *CreateAuditEntryHandler) Filter(record events.DynamoDBEventRecord) bool {
	if _auditAction(record.EventName) == "" {
		return false
	}
	_, ok := ch.Formats[_resourceType(record)]
	return ok
}

func (ch *CreateAuditEntryHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	resourceType := _resourceType(record)
	format := ch.Formats[resourceType]
	owner, message := format(record)
	if owner == "" {
		return nil
	}
	_, err := ch.Audit.Create(ctx, owner, data.AuditInputDTO{
		ResourceId:   aws.String(_stringAttribute(_getRecordImage(record), "SK")),
		ResourceType: aws.String(resourceType),
		Action:       aws.String(_auditAction(record.EventName)),
		Message:      aws.String(message),
		ExpiresIn:    aws.Int(int(ch.Now().Add(EXPIRY_LOG).Unix())),
	})
	return err
}

func DefaultAuditHandler(db data.AuditRepository) *CreateAuditEntryHandler {
	return &CreateAuditEntryHandler{
		Audit: db,
		Now:   time.Now,
		Formats: map[string]AuditMessageFormat{
			"Recipe":   _formatRecipe,
			"MealPlan": _formatMealPlan,
		},
	}
}
