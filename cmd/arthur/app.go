package main

import (
	"fmt"
	"io"

	"arthurchat/internal/config"
	"arthurchat/internal/factory"
	"arthurchat/internal/logger"
	"arthurchat/internal/output"
	"arthurchat/internal/services"
	"arthurchat/internal/storage"
	"arthurchat/internal/surface"
	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// App is the composition root: one instance of every service for the process.
type App struct {
	Config     *config.Config
	Storage    chattypes.KeyValueStore
	Surface    *surface.Document
	Registry   *services.Registry
	Store      *services.ConversationStoreService
	Messages   *services.MessageService
	Themes     *services.ThemeManagerService
	Backend    *services.BotBackendService
	Chat       *services.ChatService
	Transcript *services.TranscriptService
}

// NewApp opens storage and wires the services. storeOpts are passed to the
// conversation store after the configured download directory.
func NewApp(cfg *config.Config, storeOpts ...services.ConversationStoreOption) (*App, error) {
	kv, err := storage.Open(cfg.StorageBackend, cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}
	logger.Debug("Storage opened", "backend", cfg.StorageBackend, "dir", cfg.StorageDir)

	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	opts := append([]services.ConversationStoreOption{services.WithDownloadDir(cfg.DownloadDir)}, storeOpts...)
	store := services.NewConversationStoreService(kv, opts...)
	messages := services.NewMessageService(store, factory.NewMessageFactory(nil, nil))

	doc := surface.NewDocument("arthur-chat")
	themeManager := services.NewThemeManagerService(kv, doc)

	backend := services.NewBotBackendService(cfg.BackendURL, cfg.BackendTimeout)
	chat := services.NewChatService(messages, backend)
	transcript := services.NewTranscriptService(messages, store, themeManager)
	transcript.SetPlain(cfg.NoColor)

	app := &App{
		Config:     cfg,
		Storage:    kv,
		Surface:    doc,
		Registry:   services.NewRegistry(),
		Store:      store,
		Messages:   messages,
		Themes:     themeManager,
		Backend:    backend,
		Chat:       chat,
		Transcript: transcript,
	}

	for _, svc := range []chattypes.Service{store, messages, themeManager, backend, chat, transcript} {
		if err := app.Registry.RegisterService(svc); err != nil {
			_ = kv.Close()
			return nil, err
		}
	}
	if err := app.Registry.InitializeAll(); err != nil {
		_ = kv.Close()
		return nil, err
	}

	logger.Debug("Services initialized", "services", app.Registry.Names())
	return app, nil
}

// Printer returns a status printer for w styled with the active theme.
func (a *App) Printer(w io.Writer) *output.Printer {
	if a.Config.NoColor {
		return output.NewPrinter(output.WithWriter(w), output.PlainText())
	}
	return output.NewPrinter(output.WithWriter(w), output.WithStyles(output.NewThemeStyles(a.Themes.GetCurrentTheme())))
}

// Close releases storage.
func (a *App) Close() error {
	return a.Storage.Close()
}
