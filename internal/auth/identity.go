package auth

import "context"

type Identity struct {
	UserId string `json:"userId"`
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || identity.UserId == "" {
		return Identity{}, false
	}
	return identity, true
}
