package apiv1

import (
	"context"

	"matcher/pkg/credential"
	"matcher/pkg/dcql"
	"matcher/pkg/logger"
	"matcher/pkg/model"
	"matcher/pkg/trace"
)

// Client holds the public api object
type Client struct {
	cfg    *model.Cfg
	log    *logger.Log
	tracer *trace.Tracer
	parser credential.Parser
	scorer dcql.InformationScorer
}

// New creates a new instance of the public api
func New(ctx context.Context, parser credential.Parser, cfg *model.Cfg, tracer *trace.Tracer, log *logger.Log) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		log:    log.New("apiv1"),
		tracer: tracer,
		parser: parser,
		scorer: dcql.SensitivityScorer{},
	}

	c.log.Info("Started")

	return c, nil
}

// startSpan starts a tracing span when a tracer is wired, no-op otherwise.
func (c *Client) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if c.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := c.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}
