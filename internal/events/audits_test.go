package events

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/audits"
	"mealmaster.app/planner/internal/test"
)

func NewMemoryAudits() *test.MemoryRepository[data.AuditDTO, data.AuditInputDTO] {
	return &test.MemoryRepository[data.AuditDTO, data.AuditInputDTO]{
		Name:     "Audit",
		OnCreate: audits.NewAuditItem,
	}
}

func _record(eventName string, oldImage, newImage map[string]events.DynamoDBAttributeValue) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventName: eventName,
		Change: events.DynamoDBStreamRecord{
			OldImage: oldImage,
			NewImage: newImage,
		},
	}
}

func TestAudits(t *testing.T) {
	auditData := NewMemoryAudits()
	handler := DefaultAuditHandler(auditData)
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	handler.Now = func() time.Time { return now }
	ctx := context.TODO()

	t.Run("RecipeAudit", func(t *testing.T) {
		id := uuid.NewString()
		owner := uuid.NewString()
		image := func(name string) map[string]events.DynamoDBAttributeValue {
			return map[string]events.DynamoDBAttributeValue{
				"name":      events.NewStringAttribute(name),
				"SK":        events.NewStringAttribute(id),
				"PK":        events.NewStringAttribute("Global:Recipe"),
				"createdBy": events.NewStringAttribute(owner),
			}
		}
		records := []events.DynamoDBEventRecord{
			_record("INSERT", nil, image("A Tasty Treat")),
			_record("MODIFY", image("A Tasty Treat"), image("A Very Tasty Treat")),
			_record("REMOVE", image("A Very Tasty Treat"), nil),
		}
		expected := map[string]string{
			"INSERT": "CREATED",
			"MODIFY": "UPDATED",
			"REMOVE": "DELETED",
		}
		for _, record := range records {
			if !handler.Filter(record) {
				t.Fatalf("Expected true for %v", record)
			}
			if err := handler.Apply(ctx, record); err != nil {
				t.Fatalf("Failed to create audit entry for %v: %v", record, err)
			}
			listEntry, err := auditData.List(ctx, owner, data.QueryParams{})
			if err != nil {
				t.Fatalf("Failed to list audit entry for %v", err)
			}
			if len(listEntry.Items) != 1 {
				t.Fatalf("Expected a single audit entry, but got %d", len(listEntry.Items))
			}
			item := listEntry.Items[0]
			if item.Action != expected[record.EventName] {
				t.Fatalf("Expected %s, but got %s", expected[record.EventName], item.Action)
			}
			if item.ResourceType != "Recipe" || item.ResourceId != id {
				t.Fatalf("Expected recipe %s, but got %s %s", id, item.ResourceType, item.ResourceId)
			}
			if item.ExpiresIn == nil || *item.ExpiresIn != int(now.Add(EXPIRY_LOG).Unix()) {
				t.Fatalf("Expected the entry to expire in five years, got %v", item.ExpiresIn)
			}
			if err := auditData.Delete(ctx, owner, item.SK); err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
		}
	})

	t.Run("MealPlanAudit", func(t *testing.T) {
		id := uuid.NewString()
		owner := uuid.NewString()
		record := _record("INSERT", nil, map[string]events.DynamoDBAttributeValue{
			"SK":       events.NewStringAttribute(id),
			"PK":       events.NewStringAttribute("Global:MealPlan"),
			"userId":   events.NewStringAttribute(owner),
			"date":     events.NewStringAttribute("2024-03-04"),
			"mealType": events.NewStringAttribute("lunch"),
		})
		if !handler.Filter(record) {
			t.Fatalf("Expected meal plan records to be audited")
		}
		if err := handler.Apply(ctx, record); err != nil {
			t.Fatalf("Failed to audit meal plan entry: %v", err)
		}
		listEntry, err := auditData.List(ctx, owner, data.QueryParams{})
		if err != nil || len(listEntry.Items) != 1 {
			t.Fatalf("Expected one audit entry, got %v: %v", listEntry.Items, err)
		}
		message := listEntry.Items[0].Message
		if message != "Meal plan entry "+id+" (2024-03-04 lunch) was created" {
			t.Fatalf("Unexpected message: %s", message)
		}
	})

	t.Run("IgnoredRecords", func(t *testing.T) {
		ignored := []events.DynamoDBEventRecord{
			_record("INSERT", nil, map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute("Global:User"),
				"SK": events.NewStringAttribute(uuid.NewString()),
			}),
			_record("INSERT", nil, map[string]events.DynamoDBAttributeValue{
				"PK": events.NewStringAttribute(uuid.NewString() + ":Audit"),
				"SK": events.NewStringAttribute(uuid.NewString()),
			}),
			_record("INSERT", nil, map[string]events.DynamoDBAttributeValue{
				"SK": events.NewStringAttribute(uuid.NewString()),
			}),
		}
		for _, record := range ignored {
			if handler.Filter(record) {
				t.Fatalf("Expected %v to be ignored", record)
			}
		}
	})

	t.Run("OwnerlessRecipe", func(t *testing.T) {
		record := _record("INSERT", nil, map[string]events.DynamoDBAttributeValue{
			"PK":   events.NewStringAttribute("Global:Recipe"),
			"SK":   events.NewStringAttribute(uuid.NewString()),
			"name": events.NewStringAttribute("Seeded"),
		})
		if err := handler.Apply(ctx, record); err != nil {
			t.Fatalf("Expected ownerless recipes to be skipped, got %v", err)
		}
	})
}
