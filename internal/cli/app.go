package cli

import (
	"fmt"
	"log/slog"

	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/facts"
	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/service"
	"github.com/ppiankov/greenlie/internal/store"
)

// app bundles the collaborators every command needs
type app struct {
	cfg     *model.Config
	logger  *slog.Logger
	engine  *engine.Engine
	store   store.Store
	service *service.Service
}

func newEngine(cfg *model.Config) (*engine.Engine, error) {
	catalog, err := facts.Load(cfg.Facts.Path)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	relevance, err := engine.NewRelevanceClassifier(&cfg.Relevance)
	if err != nil {
		return nil, fmt.Errorf("relevance config: %w", err)
	}
	return engine.New(catalog, relevance), nil
}

// newApp wires the engine, store and service from the effective config
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	eng, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.NewByEngine(cfg.Store.Engine, cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		engine:  eng,
		store:   st,
		service: service.New(eng, st, service.WithLogger(logger)),
	}, nil
}

func (a *app) json() bool {
	return a.cfg.Output.Format == "json"
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", "error", err)
	}
}
