package data

import (
	"context"
	"time"
)

type ResetTokenDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	UserId     string    `dynamodbav:"userId"`
	ExpiresIn  int       `dynamodbav:"expiresIn"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

func (r ResetTokenDTO) Expired(now time.Time) bool {
	return now.Unix() >= int64(r.ExpiresIn)
}

type ResetTokenInputDTO struct {
	UserId    *string `dynamodbav:"userId"`
	ExpiresIn *int    `dynamodbav:"expiresIn"`
}

type ResetTokenRepository interface {
	Repository[ResetTokenDTO, ResetTokenInputDTO]
	// Consume deletes the token and returns what was stored. Only one caller
	// can consume a given token; the rest get a NotFoundError.
	Consume(ctx context.Context, digest string) (ResetTokenDTO, error)
}
