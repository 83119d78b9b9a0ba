package httpserver

import (
	"context"
	"net/http"
	"time"

	"matcher/pkg/httphelpers"
	"matcher/pkg/logger"
	"matcher/pkg/model"
	"matcher/pkg/trace"

	"github.com/gin-gonic/gin"
)

// Service is the service object for httpserver
type Service struct {
	cfg         *model.Cfg
	log         *logger.Log
	server      *http.Server
	apiv1       Apiv1
	gin         *gin.Engine
	tracer      *trace.Tracer
	httpHelpers *httphelpers.Client
}

// New creates a new httpserver service
func New(ctx context.Context, cfg *model.Cfg, api Apiv1, tracer *trace.Tracer, log *logger.Log) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		log:    log.New("httpserver"),
		apiv1:  api,
		gin:    gin.New(),
		tracer: tracer,
		server: &http.Server{},
	}

	var err error
	s.httpHelpers, err = httphelpers.New(ctx, s.tracer, s.cfg, s.log)
	if err != nil {
		return nil, err
	}

	rgRoot, err := s.httpHelpers.Server.Default(ctx, s.server, s.gin, s.cfg.Matcher.APIServer.Addr)
	if err != nil {
		return nil, err
	}

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "health", http.StatusOK, s.endpointHealth)

	rgAPIv1 := rgRoot.Group("api/v1")
	s.httpHelpers.Server.RegEndpoint(ctx, rgAPIv1, http.MethodPost, "match", http.StatusOK, s.endpointMatch)

	go func() {
		if err := s.httpHelpers.Server.ListenAndServe(ctx, s.server); err != nil {
			s.log.Error(err, "listen_and_serve")
		}
	}()

	s.log.Info("Started")

	return s, nil
}

// Close closes the http server
func (s *Service) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Error(err, "shutdown")
	}

	s.log.Info("Quit")
	return nil
}
