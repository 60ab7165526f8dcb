package data

import (
	"context"
	"strings"
	"time"
)

type MacroGoalsDTO struct {
	Protein float64 `dynamodbav:"protein"`
	Carbs   float64 `dynamodbav:"carbs"`
	Fat     float64 `dynamodbav:"fat"`
}

type UserDTO struct {
	PK                 string        `dynamodbav:"PK"`
	SK                 string        `dynamodbav:"SK"`
	Name               string        `dynamodbav:"name"`
	Email              string        `dynamodbav:"email"`
	PasswordHash       *string       `dynamodbav:"passwordHash,omitempty"`
	GoogleId           *string       `dynamodbav:"googleId,omitempty"`
	ProfileComplete    bool          `dynamodbav:"profileComplete"`
	DietaryPreferences []string      `dynamodbav:"dietaryPreferences"`
	Allergies          []string      `dynamodbav:"allergies"`
	FitnessGoals       []string      `dynamodbav:"fitnessGoals"`
	DailyCalorieGoal   float64       `dynamodbav:"dailyCalorieGoal"`
	MacroGoals         MacroGoalsDTO `dynamodbav:"macroGoals"`
	CreateTime         time.Time     `dynamodbav:"createTime"`
	UpdateTime         time.Time     `dynamodbav:"updateTime"`
}

type UserInputDTO struct {
	Name               *string        `dynamodbav:"name"`
	Email              *string        `dynamodbav:"email"`
	PasswordHash       *string        `dynamodbav:"passwordHash"`
	GoogleId           *string        `dynamodbav:"googleId"`
	ProfileComplete    *bool          `dynamodbav:"profileComplete"`
	DietaryPreferences *[]string      `dynamodbav:"dietaryPreferences"`
	Allergies          *[]string      `dynamodbav:"allergies"`
	FitnessGoals       *[]string      `dynamodbav:"fitnessGoals"`
	DailyCalorieGoal   *float64       `dynamodbav:"dailyCalorieGoal"`
	MacroGoals         *MacroGoalsDTO `dynamodbav:"macroGoals"`
}

// UserEmailDTO reserves a lower-cased email for exactly one user.
type UserEmailDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	UserId     string    `dynamodbav:"userId"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type UserRepository interface {
	Repository[UserDTO, UserInputDTO]
	Register(ctx context.Context, input UserInputDTO) (UserDTO, error)
	GetByEmail(ctx context.Context, email string) (UserDTO, error)
	// ReleaseEmail frees an email reservation still held by userId.
	ReleaseEmail(ctx context.Context, email string, userId string) error
}

// NormalizeEmail is the one place emails are made case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
