package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"matcher/internal/matcher/apiv1"
	"matcher/internal/matcher/httpserver"
	"matcher/pkg/configuration"
	"matcher/pkg/credential"
	"matcher/pkg/logger"
	"matcher/pkg/model"
	"matcher/pkg/trace"
)

type service interface {
	Close(ctx context.Context) error
}

func main() {
	var (
		wg                 = &sync.WaitGroup{}
		ctx                = context.Background()
		services           = make(map[string]service)
		serviceName string = "matcher"
	)

	cfg, err := configuration.New(ctx)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(serviceName, cfg.Common.Log.FolderPath, cfg.Common.Production)
	if err != nil {
		panic(err)
	}

	// main function log
	mainLog := log.New("main")

	tracer, err := trace.New(ctx, cfg, serviceName, log)
	if err != nil {
		panic(err)
	}

	parser, ok := credential.ParserFor(cfg.Matcher.Database.Layout)
	if !ok {
		panic(model.ErrUnknownLayout)
	}

	apiv1Client, err := apiv1.New(ctx, parser, cfg, tracer, log)
	if err != nil {
		panic(err)
	}

	httpService, err := httpserver.New(ctx, cfg, apiv1Client, tracer, log)
	services["httpService"] = httpService
	if err != nil {
		panic(err)
	}

	// Handle sigterm and await termChan signal
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan // Blocks here until interrupted

	mainLog.Info("HALTING SIGNAL!")

	for serviceName, service := range services {
		if err := service.Close(ctx); err != nil {
			mainLog.Trace("serviceName", serviceName, "error", err)
		}
	}

	if err := tracer.Shutdown(ctx); err != nil {
		mainLog.Trace("tracer shutdown", "error", err)
	}

	wg.Wait() // Block here until are workers are done

	mainLog.Info("Stopped")
}
