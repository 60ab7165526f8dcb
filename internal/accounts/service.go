package accounts

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"mealmaster.app/planner/internal/auth"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
	"mealmaster.app/planner/internal/notifications"
	"mealmaster.app/planner/internal/validation"
)

const INVALID_CREDENTIALS = "Invalid credentials"

const INVALID_RESET_TOKEN = "Invalid or expired token"

type Service struct {
	Users       data.UserRepository
	ResetTokens data.ResetTokenRepository
	Tokens      auth.TokenIssuer
	Hasher      auth.PasswordHasher
	Notifier    notifications.ResetNotifier
	TokenTTL    time.Duration
	ResetTTL    time.Duration
	ResetURL    string
	Now         func() time.Time
}

func _isNotFound(err error) bool {
	var notFound *exceptions.NotFoundError
	return errors.As(err, &notFound)
}

func (s *Service) _session(user data.UserDTO) (Session, error) {
	token, err := s.Tokens.Issue(user.SK, s.TokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: NewProfile(user)}, nil
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (Session, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct("user", input); err != nil {
		return Session{}, err
	}
	hashed, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return Session{}, err
	}
	user, err := s.Users.Register(ctx, data.UserInputDTO{
		Name:         aws.String(input.Name),
		Email:        aws.String(data.NormalizeEmail(input.Email)),
		PasswordHash: aws.String(hashed),
	})
	if err != nil {
		return Session{}, err
	}
	return s._session(user)
}

// Login answers an unknown email and a wrong password the same way.
func (s *Service) Login(ctx context.Context, input LoginInput) (Session, error) {
	user, err := s.Users.GetByEmail(ctx, input.Email)
	if _isNotFound(err) {
		return Session{}, exceptions.InvalidInput(INVALID_CREDENTIALS)
	}
	if err != nil {
		return Session{}, err
	}
	if user.PasswordHash == nil {
		return Session{}, exceptions.InvalidInput(INVALID_CREDENTIALS)
	}
	matched, err := s.Hasher.Compare(*user.PasswordHash, input.Password)
	if err != nil {
		return Session{}, err
	}
	if !matched {
		return Session{}, exceptions.InvalidInput(INVALID_CREDENTIALS)
	}
	return s._session(user)
}

func (s *Service) Me(ctx context.Context, userId string) (Profile, error) {
	user, err := s.Users.Get(ctx, data.GLOBAL_ACCOUNT, userId)
	if err != nil {
		return Profile{}, err
	}
	return NewProfile(user), nil
}

func (pi ProfileInput) Validate() error {
	return validation.Struct("profile", pi)
}

// UpdateProfile always marks the profile complete.
func (s *Service) UpdateProfile(ctx context.Context, userId string, input ProfileInput) (Profile, error) {
	if err := input.Validate(); err != nil {
		return Profile{}, err
	}
	update := data.UserInputDTO{
		Name:               input.Name,
		ProfileComplete:    aws.Bool(true),
		DietaryPreferences: input.DietaryPreferences,
		Allergies:          input.Allergies,
		FitnessGoals:       input.FitnessGoals,
		DailyCalorieGoal:   input.DailyCalorieGoal,
	}
	if input.MacroGoals != nil {
		update.MacroGoals = &data.MacroGoalsDTO{
			Protein: input.MacroGoals.Protein,
			Carbs:   input.MacroGoals.Carbs,
			Fat:     input.MacroGoals.Fat,
		}
	}
	user, err := s.Users.Update(ctx, data.GLOBAL_ACCOUNT, userId, update)
	if err != nil {
		return Profile{}, err
	}
	return NewProfile(user), nil
}

func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func _randomToken() (string, error) {
	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}

func (s *Service) ResetLink(token string) string {
	return s.ResetURL + "?" + url.Values{"token": []string{token}}.Encode()
}

// ForgotPassword stores only the digest of the reset token; the token itself
// only ever leaves in the notification.
func (s *Service) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	if err := validation.Struct("password reset", input); err != nil {
		return err
	}
	user, err := s.Users.GetByEmail(ctx, input.Email)
	if _isNotFound(err) {
		return exceptions.NotFound("user", data.NormalizeEmail(input.Email))
	}
	if err != nil {
		return err
	}
	token, err := _randomToken()
	if err != nil {
		return err
	}
	expiresIn := int(s.Now().Add(s.ResetTTL).Unix())
	_, err = s.ResetTokens.CreateWithItemId(ctx, data.GLOBAL_ACCOUNT, data.ResetTokenInputDTO{
		UserId:    aws.String(user.SK),
		ExpiresIn: aws.Int(expiresIn),
	}, DigestToken(token))
	if err != nil {
		return err
	}
	return s.Notifier.NotifyReset(ctx, notifications.ResetInput{
		Email:     user.Email,
		Name:      user.Name,
		Link:      s.ResetLink(token),
		ExpiresIn: s.ResetTTL,
	})
}

// ResetPassword consumes the token before the password changes. Of two
// concurrent resets with one token, only one gets past Consume.
func (s *Service) ResetPassword(ctx context.Context, token string, input ResetPasswordInput) error {
	if err := validation.Struct("password reset", input); err != nil {
		return err
	}
	stored, err := s.ResetTokens.Consume(ctx, DigestToken(token))
	if _isNotFound(err) {
		return exceptions.InvalidInput(INVALID_RESET_TOKEN)
	}
	if err != nil {
		return err
	}
	if stored.Expired(s.Now()) {
		return exceptions.InvalidInput(INVALID_RESET_TOKEN)
	}
	hashed, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return err
	}
	_, err = s.Users.Update(ctx, data.GLOBAL_ACCOUNT, stored.UserId, data.UserInputDTO{
		PasswordHash: aws.String(hashed),
	})
	if _isNotFound(err) {
		return exceptions.InvalidInput(INVALID_RESET_TOKEN)
	}
	return err
}
