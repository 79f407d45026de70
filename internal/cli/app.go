package cli

import (
	"context"
	"fmt"

	"financas/internal/backend"
	"financas/internal/config"
	"financas/internal/dashboard"
	"financas/internal/interpreter"
	"financas/internal/log"
)

// app is the wiring shared by serve and say.
type app struct {
	backend *backend.Result
	signer  *dashboard.Signer
	interp  *interpreter.Interpreter
}

func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backend.FromAppConfig(cfg))
	if err != nil {
		return nil, err
	}

	opts := []interpreter.Option{
		interpreter.WithLogger(logger.WithComponent(log.ComponentInterpreter)),
	}
	if cfg.LexiconFile != "" {
		lex, err := interpreter.LoadLexicon(cfg.LexiconFile)
		if err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		opts = append(opts, interpreter.WithLexicon(lex))
		logger.Info("Loaded lexicon", "path", cfg.LexiconFile, "version", lex.Version)
	}

	a := &app{backend: res}
	if cfg.DashboardURL != "" {
		a.signer = dashboard.NewSigner(cfg.DashboardURL, cfg.DashboardSecret, cfg.DashboardTokenTTL)
		opts = append(opts, interpreter.WithLinks(a.signer))
	}
	a.interp = interpreter.New(res.Store, opts...)
	return a, nil
}

func (a *app) Close() error { return a.backend.Close() }
