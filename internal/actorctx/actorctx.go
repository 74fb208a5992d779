package actorctx

import (
	"context"

	"github.com/geocoder89/supportdesk/internal/domain/user"
)

type ctxKey string

const keyActor ctxKey = "actor"

// Actor is the verified identity the auth middleware attaches to the request
// context. It comes exclusively from the token payload; client-supplied
// fields must never repopulate it.
type Actor struct {
	AccountID string
	Role      user.Role
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, keyActor, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(keyActor).(Actor)

	return a, ok && a.AccountID != ""
}
