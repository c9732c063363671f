package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/andy/hotelmgr/internal/api"
	"github.com/andy/hotelmgr/internal/config"
	"github.com/andy/hotelmgr/internal/crud"
	"github.com/andy/hotelmgr/internal/domain"
	"github.com/andy/hotelmgr/internal/i18n"
	"github.com/andy/hotelmgr/internal/logx"
)

// Version is set at build time
var Version = "dev"

// ClientManager is the view state manager of the client screen
type ClientManager = crud.Manager[domain.Client, domain.ClientDraft]

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Messages   *i18n.Translator

	// Backend
	API     *api.Client
	Clients *api.ClientService

	logCloser io.Closer
}

// Options override config values from command line flags
type Options struct {
	ConfigPath string
	APIURL     string
	LogLevel   string
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config (file, then HOTELMGR_* env, then flags)
// 2. Opening the log file
// 3. Loading the message catalogs
// 4. Creating the backend client
func New(ctx context.Context, opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.API.BaseURL = opts.APIURL
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	a, err := NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.ConfigPath = path
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Ensure the log directory exists
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, closer := logx.New(logx.Config{
		Service: "hotelmgr",
		Version: Version,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
	})

	bundle, err := i18n.Load()
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	tr := bundle.Translator(cfg.UI.Locale)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	logger.InfoContext(ctx, "app initialized",
		slog.String("api", client.BaseURL),
		slog.String("locale", tr.Locale()),
	)

	return &App{
		Config:     cfg,
		ConfigPath: config.DefaultConfigPath(),
		Logger:     logger,
		Messages:   tr,
		API:        client,
		Clients:    client.Clients(),
		logCloser:  closer,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

// NewClientManager builds the client screen's state manager.
// confirm answers delete prompts; nil declines every delete.
func (a *App) NewClientManager(confirm crud.Confirmer) *ClientManager {
	return NewClientManager(a.Clients, confirm, a.Messages, a.Logger)
}

// NewClientManager wires a client service to a manager with localized texts
func NewClientManager(svc crud.Service[domain.Client, domain.ClientDraft], confirm crud.Confirmer, tr *i18n.Translator, logger *slog.Logger) *ClientManager {
	return crud.New(svc, confirm, crud.Options[domain.Client, domain.ClientDraft]{
		ID:       domain.ClientID,
		ToDraft:  domain.DraftFromClient,
		Validate: domain.ClientDraft.Validate,
		Describe: describeError(tr),
		Messages: crud.Messages{
			LoadFailed:    tr.T("clients.load_failed"),
			SaveFailed:    tr.T("clients.save_failed"),
			DeleteFailed:  tr.T("clients.delete_failed"),
			Created:       tr.T("clients.created"),
			Updated:       tr.T("clients.updated"),
			Deleted:       tr.T("clients.deleted"),
			ConfirmDelete: tr.T("clients.confirm_delete"),
		},
		Logger: logger,
	})
}

// describeError localizes draft validation failures and falls back to the
// reason the backend sent
func describeError(tr *i18n.Translator) func(error) string {
	return func(err error) string {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			field := tr.T("field." + fe.Field)
			switch fe.Rule {
			case "required", "email", "datetime":
				return tr.T("invalid."+fe.Rule, field)
			default:
				return tr.T("invalid.other", field)
			}
		}
		return crud.Reason(err)
	}
}
