package users

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/services"
	"mealmaster.app/planner/internal/dynamodb/token"
	"mealmaster.app/planner/internal/exceptions"
)

const EMAIL_INDEX = "UserEmail"

// NewUserItem fills in the profile defaults every new account starts with.
func NewUserItem(uid data.UserInputDTO, createTime time.Time, pk, sk string) data.UserDTO {
	user := data.UserDTO{
		PK:                 pk,
		SK:                 sk,
		Name:               aws.ToString(uid.Name),
		Email:              data.NormalizeEmail(aws.ToString(uid.Email)),
		PasswordHash:       uid.PasswordHash,
		GoogleId:           uid.GoogleId,
		DietaryPreferences: []string{},
		Allergies:          []string{},
		FitnessGoals:       []string{},
		DailyCalorieGoal:   2000,
		MacroGoals: data.MacroGoalsDTO{
			Protein: 25,
			Carbs:   50,
			Fat:     25,
		},
		CreateTime: createTime,
		UpdateTime: createTime,
	}
	if uid.ProfileComplete != nil {
		user.ProfileComplete = *uid.ProfileComplete
	}
	if uid.DailyCalorieGoal != nil {
		user.DailyCalorieGoal = *uid.DailyCalorieGoal
	}
	if uid.MacroGoals != nil {
		user.MacroGoals = *uid.MacroGoals
	}
	return user
}

type UserDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.UserDTO, data.UserInputDTO]
}

func NewUserService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.UserRepository {
	return &UserDynamoDBService{
		RepositoryDynamoDBService: &services.RepositoryDynamoDBService[data.UserDTO, data.UserInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           "User",
			Shim: func(pk, sk string) data.UserDTO {
				return data.UserDTO{PK: pk, SK: sk}
			},
			OnCreate: NewUserItem,
			OnUpdate: func(uid data.UserInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
				if uid.Name != nil {
					update = update.Set(expression.Name("name"), expression.Value(uid.Name))
				}
				if uid.PasswordHash != nil {
					update = update.Set(expression.Name("passwordHash"), expression.Value(uid.PasswordHash))
				}
				if uid.GoogleId != nil {
					update = update.Set(expression.Name("googleId"), expression.Value(uid.GoogleId))
				}
				if uid.ProfileComplete != nil {
					update = update.Set(expression.Name("profileComplete"), expression.Value(uid.ProfileComplete))
				}
				if uid.DietaryPreferences != nil {
					update = update.Set(expression.Name("dietaryPreferences"), expression.Value(uid.DietaryPreferences))
				}
				if uid.Allergies != nil {
					update = update.Set(expression.Name("allergies"), expression.Value(uid.Allergies))
				}
				if uid.FitnessGoals != nil {
					update = update.Set(expression.Name("fitnessGoals"), expression.Value(uid.FitnessGoals))
				}
				if uid.DailyCalorieGoal != nil {
					update = update.Set(expression.Name("dailyCalorieGoal"), expression.Value(uid.DailyCalorieGoal))
				}
				if uid.MacroGoals != nil {
					update = update.Set(expression.Name("macroGoals"), expression.Value(uid.MacroGoals))
				}
				return update
			},
		},
	}
}

// Register writes the user and its email reservation in one transaction, so
// a taken email fails the whole registration without leaving a user behind.
func (us *UserDynamoDBService) Register(ctx context.Context, input data.UserInputDTO) (data.UserDTO, error) {
	gid, err := uuid.NewUUID()
	if err != nil {
		return data.UserDTO{}, err
	}
	now := time.Now()
	user := us.OnCreate(input, now, services.PrimaryKey(data.GLOBAL_ACCOUNT, us.Name), gid.String())
	reservation := data.UserEmailDTO{
		PK:         services.PrimaryKey(data.GLOBAL_ACCOUNT, EMAIL_INDEX),
		SK:         user.Email,
		UserId:     user.SK,
		CreateTime: now,
	}
	userItem, err := attributevalue.MarshalMap(user)
	if err != nil {
		return user, err
	}
	reservationItem, err := attributevalue.MarshalMap(reservation)
	if err != nil {
		return user, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists()).Build()
	if err != nil {
		return user, err
	}
	_, err = us.DynamoDB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(us.TableName),
					Item:                     reservationItem,
					ConditionExpression:      expr.Condition(),
					ExpressionAttributeNames: expr.Names(),
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(us.TableName),
					Item:                     userItem,
					ConditionExpression:      expr.Condition(),
					ExpressionAttributeNames: expr.Names(),
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return user, exceptions.ConflictMessage("user", "User already exists")
				}
			}
		}
		return user, err
	}
	return user, nil
}

func (us *UserDynamoDBService) GetByEmail(ctx context.Context, email string) (data.UserDTO, error) {
	normalized := data.NormalizeEmail(email)
	key, err := services.Key(services.PrimaryKey(data.GLOBAL_ACCOUNT, EMAIL_INDEX), normalized)
	if err != nil {
		return data.UserDTO{}, err
	}
	response, err := us.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(us.TableName),
		Key:       key,
	})
	if err != nil {
		return data.UserDTO{}, err
	}
	if response.Item == nil {
		return data.UserDTO{}, exceptions.NotFound("user", normalized)
	}
	var reservation data.UserEmailDTO
	if err := attributevalue.UnmarshalMap(response.Item, &reservation); err != nil {
		return data.UserDTO{}, err
	}
	return us.Get(ctx, data.GLOBAL_ACCOUNT, reservation.UserId)
}

func (us *UserDynamoDBService) ReleaseEmail(ctx context.Context, email string, userId string) error {
	key, err := services.Key(services.PrimaryKey(data.GLOBAL_ACCOUNT, EMAIL_INDEX), data.NormalizeEmail(email))
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("userId").Equal(expression.Value(userId))).
		Build()
	if err != nil {
		return err
	}
	_, err = us.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(us.TableName),
		Key:                       key,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if services.IsConditionFailure(err) {
		return nil
	}
	return err
}
