package httpserver

import (
	"context"

	"matcher/internal/matcher/apiv1"
)

// Apiv1 is the api surface the http server exposes
type Apiv1 interface {
	Match(ctx context.Context, request *apiv1.MatchRequest) (*apiv1.MatchReply, error)
	Health(ctx context.Context) (*apiv1.StatusReply, error)
}
