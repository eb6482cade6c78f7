package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/tubequiz/internal/app"
	"github.com/abhisek/tubequiz/internal/certificate"
	"github.com/abhisek/tubequiz/internal/config"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logging"
	"github.com/abhisek/tubequiz/internal/quizgen"
	"github.com/abhisek/tubequiz/internal/session"
	"github.com/abhisek/tubequiz/internal/store"
	"github.com/abhisek/tubequiz/internal/transcript"
)

// services bundles what a quiz-taking command needs.
type services struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	generator *quizgen.Generator
	service   *session.Service
	emitter   *certificate.Emitter
	closeLog  func() error
}

// newServices loads config, opens the log file and the store, and builds
// the provider, fetcher, generator, session service and certificate emitter.
func newServices(ctx context.Context, cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	sv := &services{cfg: cfg, logger: logger, closeLog: closeLog}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		sv.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	sv.store, err = store.Open(dbPath)
	if err != nil {
		sv.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, sv.store.EventRepo(), logger)
	if err != nil {
		sv.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	genCfg := quizgen.DefaultConfig()
	genCfg.QuestionCount = cfg.Quiz.QuestionCount
	genCfg.ExcerptChars = cfg.Quiz.ExcerptChars
	genCfg.LenientDifficulty = cfg.Quiz.LenientDifficulty
	genCfg.Structured = cfg.Quiz.Structured
	sv.generator = quizgen.New(provider, genCfg, logger)

	sv.service = session.NewService(
		transcript.NewYouTubeFetcher(cfg.Transcript.Language),
		sv.generator,
		session.Config{MinQuestions: cfg.Quiz.MinQuestions, PassThreshold: cfg.Quiz.PassThreshold},
		logger,
	)
	sv.emitter = certificate.NewEmitter(cfg.Certificate.Dir,
		certificate.WithRepo(sv.store.CertificateRepo()),
		certificate.WithLogger(logger))

	logger.Info("tubequiz started",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
		zap.String("db", dbPath),
		zap.String("config", cfg.File))
	return sv, nil
}

// Close releases the store and flushes the log.
func (sv *services) Close() {
	if sv.store != nil {
		sv.store.Close()
	}
	_ = sv.logger.Sync()
	if sv.closeLog != nil {
		sv.closeLog()
	}
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	sv, err := newServices(context.Background(), cmd)
	if err != nil {
		return err
	}
	defer sv.Close()

	url, _ := cmd.Flags().GetString("url")
	return app.Run(app.Deps{
		Generator:     sv.service,
		Issuer:        sv.emitter,
		PassThreshold: sv.service.Config().PassThreshold,
		InitialURL:    url,
	})
}
