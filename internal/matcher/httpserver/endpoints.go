package httpserver

import (
	"context"

	"matcher/internal/matcher/apiv1"

	"github.com/gin-gonic/gin"
)

func (s *Service) endpointMatch(ctx context.Context, g *gin.Context) (any, error) {
	request := &apiv1.MatchRequest{}
	if err := g.ShouldBindJSON(request); err != nil {
		return nil, err
	}

	reply, err := s.apiv1.Match(ctx, request)
	if err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *Service) endpointHealth(ctx context.Context, g *gin.Context) (any, error) {
	reply, err := s.apiv1.Health(ctx)
	if err != nil {
		return nil, err
	}

	return reply, nil
}
