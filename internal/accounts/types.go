package accounts

import (
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/nutrition"
)

// Profile is the public view of a user, it never carries credentials.
type Profile struct {
	Id                 string                  `json:"id"`
	Name               string                  `json:"name"`
	Email              string                  `json:"email"`
	ProfileComplete    bool                    `json:"profileComplete"`
	DietaryPreferences []string                `json:"dietaryPreferences"`
	Allergies          []string                `json:"allergies"`
	FitnessGoals       []string                `json:"fitnessGoals"`
	DailyCalorieGoal   float64                 `json:"dailyCalorieGoal"`
	MacroGoals         nutrition.MacroPercents `json:"macroGoals"`
}

func _orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func NewProfile(user data.UserDTO) Profile {
	return Profile{
		Id:                 user.SK,
		Name:               user.Name,
		Email:              user.Email,
		ProfileComplete:    user.ProfileComplete,
		DietaryPreferences: _orEmpty(user.DietaryPreferences),
		Allergies:          _orEmpty(user.Allergies),
		FitnessGoals:       _orEmpty(user.FitnessGoals),
		DailyCalorieGoal:   user.DailyCalorieGoal,
		MacroGoals: nutrition.MacroPercents{
			Protein: user.MacroGoals.Protein,
			Carbs:   user.MacroGoals.Carbs,
			Fat:     user.MacroGoals.Fat,
		},
	}
}

func (p Profile) GoalProfile() nutrition.GoalProfile {
	return nutrition.GoalProfile{
		DailyCalorieGoal: p.DailyCalorieGoal,
		MacroGoals:       p.MacroGoals,
	}
}

type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	Name               *string                  `json:"name" validate:"omitempty,notblank"`
	DietaryPreferences *[]string                `json:"dietaryPreferences" validate:"omitempty,dive,oneof=Vegetarian Vegan Pescatarian Keto Paleo Mediterranean Low-Carb High-Protein Gluten-Free Dairy-Free"`
	Allergies          *[]string                `json:"allergies" validate:"omitempty,dive,oneof=Nuts Dairy Eggs Soy Shellfish Fish Gluten Sesame"`
	FitnessGoals       *[]string                `json:"fitnessGoals" validate:"omitempty,dive,oneof='Weight Loss' 'Muscle Gain' 'Maintain Weight' 'Improve Health' 'Increase Energy' 'Better Sleep' 'Reduce Stress'"`
	DailyCalorieGoal   *float64                 `json:"dailyCalorieGoal" validate:"omitempty,gt=0"`
	MacroGoals         *nutrition.MacroPercents `json:"macroGoals" validate:"omitempty"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,notblank"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"min=6"`
}
