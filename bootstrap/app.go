// Package bootstrap wires configuration, logging, the backend client and
// the editor together into a runnable application.
package bootstrap

import (
	"fmt"

	"argus/client"
	"argus/config"
	"argus/editor"
	"argus/notify"
	"argus/preview"
	"argus/session"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App holds the application's shared components.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	Client   *client.Client
	Notifier notify.Notifier
	Store    session.Store
}

// NewApp creates a new application instance and initializes all components.
func NewApp() (*App, error) {
	cfg, err := InitConfig(nil)
	if err != nil {
		return nil, err
	}

	logger, sugar, err := InitLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sugar.Infow("Argus rule editor starting",
		"api_base_url", cfg.API.BaseURL,
		"attack_matrix", cfg.Attack.Matrix)

	var store session.Store
	if cfg.Session.Path != "" {
		fileStore, err := session.NewFileStore(cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store %s: %w", cfg.Session.Path, err)
		}
		store = fileStore
	} else {
		store = session.NewMemoryStore()
	}

	backend := client.New(client.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		SuggestRate:  rate.Limit(cfg.API.SuggestRate),
		SuggestBurst: cfg.API.SuggestBurst,
	}, sugar)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sugar:    sugar,
		Client:   backend,
		Notifier: notify.NewLogNotifier(sugar),
		Store:    store,
	}, nil
}

// NewEditorSession creates a rule editing session backed by the app's
// client, notifier and preference store.
func (a *App) NewEditorSession() *editor.Session {
	return editor.NewSession(editor.Dependencies{
		Fields:       a.Client,
		Suggestions:  a.Client,
		Rules:        a.Client,
		Tactics:      a.Client,
		History:      a.Client,
		Notifier:     a.Notifier,
		Store:        a.Store,
		Logger:       a.Sugar,
		AttackMatrix: a.Config.Attack.Matrix,
	})
}

// NewReconciler creates a preview reconciler bound to the app's client.
func (a *App) NewReconciler() *preview.Reconciler {
	return preview.New(a.Client, a.Notifier, a.Sugar, a.Config.Preview.Timeout)
}

// Shutdown flushes buffered log entries.
func (a *App) Shutdown() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
