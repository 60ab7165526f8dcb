package test

import (
	"context"
	"time"

	"mealmaster.app/planner/internal/data"
)

type MemoryResetTokens struct {
	*MemoryRepository[data.ResetTokenDTO, data.ResetTokenInputDTO]
}

func NewMemoryResetTokens() *MemoryResetTokens {
	return &MemoryResetTokens{&MemoryRepository[data.ResetTokenDTO, data.ResetTokenInputDTO]{
		Name: "ResetToken",
		OnCreate: func(input data.ResetTokenInputDTO, now time.Time, pk, sk string) data.ResetTokenDTO {
			return data.ResetTokenDTO{PK: pk, SK: sk, UserId: *input.UserId, ExpiresIn: *input.ExpiresIn, CreateTime: now, UpdateTime: now}
		},
	}}
}

func (mr *MemoryResetTokens) Consume(ctx context.Context, digest string) (data.ResetTokenDTO, error) {
	return mr.Take(ctx, data.GLOBAL_ACCOUNT, digest)
}
