// Package main runs vsh, an in-memory Unix-like shell for the terminal.
// Commands it does not know are answered by Gemini when GEMINI_API_KEY is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/hostfs"
	"github.com/Cyclone1070/vsh/internal/logging"
	"github.com/Cyclone1070/vsh/internal/markdown"
	"github.com/Cyclone1070/vsh/internal/metrics"
	"github.com/Cyclone1070/vsh/internal/provider/gemini"
	"github.com/Cyclone1070/vsh/internal/session"
	"github.com/Cyclone1070/vsh/internal/shell"
	"github.com/Cyclone1070/vsh/internal/ui"
	"github.com/Cyclone1070/vsh/internal/ui/models"
	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config          *config.Config
	UI              ui.UserInterface
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
	Renderer        shell.MarkdownRenderer
	ResolverFactory func(context.Context, *zap.Logger) shell.Resolver
}

func createRealUI(cfg *config.Config) ui.UserInterface {
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(ui.NewUIChannels(), cfg, spinnerFactory)
}

// createRealResolverFactory returns nil when the fallback is off, which the
// dispatcher reports as "not configured".
func createRealResolverFactory(cfg *config.Config) func(context.Context, *zap.Logger) shell.Resolver {
	return func(ctx context.Context, logger *zap.Logger) shell.Resolver {
		if !cfg.Fallback.Enabled || cfg.Fallback.APIKey == "" {
			logger.Info("AI fallback disabled", zap.Bool("enabled", cfg.Fallback.Enabled))
			return nil
		}

		client, err := gemini.NewClient(ctx, cfg.Fallback, logger)
		if err != nil {
			logger.Error("failed to create Gemini client", zap.Error(err))
			return shell.UnavailableResolver{Err: fmt.Errorf("AI fallback unavailable: %w", err)}
		}
		return gemini.NewResolver(client, cfg.Fallback, logger)
	}
}

func main() {
	// Load configuration (from defaults + ~/.config/vsh/config.json + environment)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
		cfg.Fallback.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger, closeLog = zap.NewNop(), func() error { return nil }
	}
	defer func() { _ = closeLog() }()

	deps := Dependencies{
		Config:          cfg,
		UI:              createRealUI(cfg),
		Logger:          logger,
		Metrics:         metrics.New(),
		Renderer:        markdown.NewGlamourRenderer(markdown.DefaultStyle),
		ResolverFactory: createRealResolverFactory(cfg),
	}

	if err := runInteractive(context.Background(), deps); err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		_ = closeLog()
		os.Exit(1)
	}
}

// buildSession assembles the dispatcher and session. The returned status
// describes the host import, if any.
func buildSession(ctx context.Context, deps Dependencies, id string) (*session.Session, string) {
	cfg := deps.Config
	logger := deps.Logger.With(zap.String("session_id", id))

	fs := vfs.Seed()
	status := ""
	if cfg.Shell.ImportDir != "" {
		next, target, report, err := hostfs.Mount(fs, cfg.Shell.ImportDir, hostfs.Options{
			MaxFileSize: cfg.Shell.ImportMaxFileSize,
			MaxFiles:    cfg.Shell.ImportMaxFiles,
			Logger:      logger,
		})
		if err != nil {
			logger.Warn("host import failed", zap.Error(err))
			status = fmt.Sprintf("Import failed: %v", err)
		} else {
			fs = next
			noun := "files"
			if report.Files == 1 {
				noun = "file"
			}
			status = fmt.Sprintf("Imported %d %s into %s", report.Files, noun, session.DisplayPath(target))
			if report.Truncated {
				status += " (truncated)"
			}
		}
	}

	dispatcher := shell.NewDispatcher(shell.Options{
		User:        cfg.Shell.User,
		Hostname:    cfg.Shell.Hostname,
		RenderWidth: cfg.Shell.RenderWidth,
		Resolver:    deps.ResolverFactory(ctx, logger),
		Renderer:    deps.Renderer,
		Recorder:    deps.Metrics,
		Logger:      logger,
		ExtraHelp:   session.Builtins(),
	})

	sess := session.New(cfg.Shell, dispatcher, session.Options{
		ID:       id,
		FS:       fs,
		Logger:   deps.Logger,
		Observer: deps.Metrics,
	})
	return sess, status
}

func runInteractive(ctx context.Context, deps Dependencies) error {
	userInterface := deps.UI

	// Create cancellable context for goroutines
	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	if addr := deps.Config.Metrics.Addr; addr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := deps.Metrics.Serve(shellCtx, addr); err != nil {
				deps.Logger.Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
			}
		}()
	}

	// REPL goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		<-userInterface.Ready() // Wait for UI to be ready

		sess, status := buildSession(shellCtx, deps, uuid.NewString())
		if status != "" {
			userInterface.WriteStatus(models.PhaseReady, status)
		}
		runREPL(shellCtx, userInterface, sess, deps.Config.Shell)
	}()

	// Run UI in main thread (blocks until exit)
	err := userInterface.Start()

	// UI exited, trigger shutdown
	cancel()

	// Wait for goroutines to finish
	wg.Wait()
	return err
}

// runREPL feeds submitted lines to the session until ctx is cancelled.
func runREPL(ctx context.Context, userInterface ui.UserInterface, sess *session.Session, cfg config.ShellConfig) {
	for {
		line, err := userInterface.ReadInput(ctx, inputRequest(sess, cfg))
		if err != nil {
			return // UI closed or context cancelled
		}

		out, err := sess.Submit(ctx, line)
		switch {
		case errors.Is(err, session.ErrBusy):
			userInterface.WriteOutput(ui.Output{Text: "Error: a command is already running", Failed: true})
		case err != nil:
			userInterface.WriteOutput(ui.Output{Text: fmt.Sprintf("Error: %v", err), Failed: true})
		case out.Clear:
			userInterface.Clear()
		default:
			userInterface.WriteOutput(ui.Output{Text: out.Output, Failed: out.Failed})
		}
	}
}

func inputRequest(sess *session.Session, cfg config.ShellConfig) ui.InputRequest {
	dirEntries := sess.Entries()
	entries := make([]models.Entry, len(dirEntries))
	for i, e := range dirEntries {
		entries[i] = models.Entry{Name: e.Name, IsDir: e.IsDir}
	}

	return ui.InputRequest{
		Prompt: models.Prompt{
			User: cfg.User,
			Host: cfg.Hostname,
			Path: session.DisplayPath(sess.Cwd()),
		},
		Entries: entries,
		History: sess.History(),
	}
}
