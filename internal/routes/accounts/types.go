package accounts

import "mealmaster.app/planner/internal/accounts"

const RESET_SENT_MESSAGE = "Password reset link sent to your email."

const RESET_DONE_MESSAGE = "Password reset successful"

type UserResponse struct {
	User accounts.Profile `json:"user"`
}

func NewUserResponse(profile accounts.Profile) UserResponse {
	return UserResponse{User: profile}
}
