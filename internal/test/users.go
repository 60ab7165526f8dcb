package test

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
)

// MemoryUsers adds the email reservation of the users table on top of a
// MemoryRepository.
type MemoryUsers struct {
	*MemoryRepository[data.UserDTO, data.UserInputDTO]
	emailMutex sync.Mutex
	emails     map[string]string
}

func (mu *MemoryUsers) Register(ctx context.Context, input data.UserInputDTO) (data.UserDTO, error) {
	mu.emailMutex.Lock()
	defer mu.emailMutex.Unlock()
	email := data.NormalizeEmail(aws.ToString(input.Email))
	if _, ok := mu.emails[email]; ok {
		return data.UserDTO{}, exceptions.ConflictMessage("user", "User already exists")
	}
	user, err := mu.Create(ctx, data.GLOBAL_ACCOUNT, input)
	if err != nil {
		return user, err
	}
	mu.emails[email] = user.SK
	return user, nil
}

func (mu *MemoryUsers) GetByEmail(ctx context.Context, email string) (data.UserDTO, error) {
	mu.emailMutex.Lock()
	userId, ok := mu.emails[data.NormalizeEmail(email)]
	mu.emailMutex.Unlock()
	if !ok {
		return data.UserDTO{}, exceptions.NotFound("user", email)
	}
	return mu.Get(ctx, data.GLOBAL_ACCOUNT, userId)
}

func (mu *MemoryUsers) ReleaseEmail(ctx context.Context, email string, userId string) error {
	mu.emailMutex.Lock()
	defer mu.emailMutex.Unlock()
	normalized := data.NormalizeEmail(email)
	if mu.emails[normalized] == userId {
		delete(mu.emails, normalized)
	}
	return nil
}

// ApplyUserInput mirrors the update expression of the DynamoDB users table.
func ApplyUserInput(user data.UserDTO, input data.UserInputDTO) data.UserDTO {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PasswordHash != nil {
		user.PasswordHash = input.PasswordHash
	}
	if input.GoogleId != nil {
		user.GoogleId = input.GoogleId
	}
	if input.ProfileComplete != nil {
		user.ProfileComplete = *input.ProfileComplete
	}
	if input.DietaryPreferences != nil {
		user.DietaryPreferences = *input.DietaryPreferences
	}
	if input.Allergies != nil {
		user.Allergies = *input.Allergies
	}
	if input.FitnessGoals != nil {
		user.FitnessGoals = *input.FitnessGoals
	}
	if input.DailyCalorieGoal != nil {
		user.DailyCalorieGoal = *input.DailyCalorieGoal
	}
	if input.MacroGoals != nil {
		user.MacroGoals = *input.MacroGoals
	}
	return user
}

func NewMemoryUsers(onCreate func(data.UserInputDTO, time.Time, string, string) data.UserDTO) *MemoryUsers {
	return &MemoryUsers{
		emails: make(map[string]string),
		MemoryRepository: &MemoryRepository[data.UserDTO, data.UserInputDTO]{
			Name:     "User",
			OnCreate: onCreate,
			OnUpdate: ApplyUserInput,
		},
	}
}
