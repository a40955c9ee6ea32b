package services

import (
	"fmt"
	"sync"

	"arthurchat/internal/logger"
	"arthurchat/internal/reactive"
	"arthurchat/internal/themes"
	"arthurchat/pkg/chattypes"
)

// ThemePreferenceKey is the storage key holding the selected theme kind.
const ThemePreferenceKey = "arthur-chat-theme"

// ThemeManagerService owns the active theme. It applies the theme's variables
// to a style surface, persists the preference and notifies subscribers.
//
// A switch persists, swaps the factory, updates the surface and queues the broadcast
// under mu. Broadcasts are delivered after mu is released, in switch order.
type ThemeManagerService struct {
	mu          sync.Mutex
	storage     chattypes.KeyValueStore
	surface     chattypes.StyleSurface
	factories   map[chattypes.ThemeKind]*themes.Factory
	current     *themes.Factory
	theme       *reactive.Subject[chattypes.Theme]
}

// NewThemeManagerService applies the light theme to surface, then restores a valid
// saved preference from storage. The restore does not write storage.
func NewThemeManagerService(storage chattypes.KeyValueStore, surface chattypes.StyleSurface) *ThemeManagerService {
	factories := themes.NewFactories()
	light := factories[chattypes.ThemeLight]

	t := &ThemeManagerService{
		storage:   storage,
		surface:   surface,
		factories: factories,
		current:   light,
		theme:     reactive.NewSubject(light.GetTheme()),
	}
	themes.Apply(surface, light.GetTheme())
	t.restorePreference()
	return t
}

// Name returns the service name "theme_manager" for registration.
func (t *ThemeManagerService) Name() string {
	return "theme_manager"
}

// Initialize logs the restored theme.
func (t *ThemeManagerService) Initialize() error {
	logger.Debug("ThemeManagerService initialized", "theme", t.GetCurrentThemeType())
	return nil
}

func (t *ThemeManagerService) restorePreference() {
	saved, ok, err := t.storage.GetItem(ThemePreferenceKey)
	if err != nil {
		logger.Warn("Failed to read theme preference", "error", err)
		return
	}
	if !ok {
		return
	}
	kind := chattypes.ThemeKind(saved)
	if !kind.IsValid() {
		logger.Debug("Ignoring unknown saved theme", "theme", saved)
		return
	}

	t.mu.Lock()
	t.applyLocked(t.factories[kind])
	t.mu.Unlock()
	t.theme.Flush()
}

// SetTheme switches to kind, or to light when kind is unknown, persists the
// resolved kind and notifies subscribers. A failed write only logs.
func (t *ThemeManagerService) SetTheme(kind chattypes.ThemeKind) {
	factory, ok := t.factories[kind]
	if !ok {
		logger.Debug("Unknown theme, falling back to light", "theme", kind)
		factory = t.factories[chattypes.ThemeLight]
	}

	t.mu.Lock()
	if err := t.storage.SetItem(ThemePreferenceKey, string(factory.Kind())); err != nil {
		logger.StorageFailure(ThemePreferenceKey, err)
	}
	t.applyLocked(factory)
	t.mu.Unlock()

	t.theme.Flush()
	logger.ServiceOperation("theme_manager", "set_theme", "theme", factory.Kind())
}

// SetThemeByName parses name leniently and switches theme. It reports an error for
// names outside the catalog instead of falling back.
func (t *ThemeManagerService) SetThemeByName(name string) error {
	kind, ok := chattypes.ParseThemeKind(name)
	if !ok {
		return fmt.Errorf("%w: %q", themes.ErrUnknownTheme, name)
	}
	t.SetTheme(kind)
	return nil
}

// applyLocked makes factory current, updates the surface and queues the broadcast.
// The caller holds mu and flushes the subject after releasing it.
func (t *ThemeManagerService) applyLocked(factory *themes.Factory) {
	t.current = factory
	themes.Apply(t.surface, factory.GetTheme())
	t.theme.Set(factory.GetTheme())
}

// Subscribe registers fn for every theme change. fn is called immediately with the current theme.
func (t *ThemeManagerService) Subscribe(fn func(chattypes.Theme)) func() {
	return t.theme.Subscribe(fn)
}

// GetCurrentTheme returns the active theme token bundle.
func (t *ThemeManagerService) GetCurrentTheme() chattypes.Theme {
	return t.theme.Value()
}

// GetCurrentThemeType returns the active theme kind.
func (t *ThemeManagerService) GetCurrentThemeType() chattypes.ThemeKind {
	return t.theme.Value().Name
}

// GetAvailableThemes returns the theme catalog.
func (t *ThemeManagerService) GetAvailableThemes() []chattypes.ThemeOption {
	return themes.AvailableThemes()
}

// GetThemeFactory returns the active theme factory.
func (t *ThemeManagerService) GetThemeFactory() *themes.Factory {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// CreateMessageComponent styles a message with the active theme.
func (t *ThemeManagerService) CreateMessageComponent(message string, sender chattypes.Sender) *themes.MessageComponent {
	return t.GetThemeFactory().CreateMessageComponent(message, sender)
}

// CreateButtonComponent styles a button with the active theme.
func (t *ThemeManagerService) CreateButtonComponent(label string, onClick func()) *themes.ButtonComponent {
	return t.GetThemeFactory().CreateButtonComponent(label, onClick)
}

// CreateContainerComponent returns an empty container styled with the active theme.
func (t *ThemeManagerService) CreateContainerComponent() *themes.ContainerComponent {
	return t.GetThemeFactory().CreateContainerComponent()
}
