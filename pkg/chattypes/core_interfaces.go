// Package chattypes defines core architectural interfaces for arthurchat.
// This file contains the seams between the state core and its environment:
// service lifecycle, durable storage, time, identifiers and the style surface.
package chattypes

import "time"

// Service defines the lifecycle shared by every arthurchat service.
// Services are registered in a registry and initialized once at startup.
type Service interface {
	Name() string
	Initialize() error
}

// ServiceRegistry manages the registration and retrieval of services.
type ServiceRegistry interface {
	GetService(name string) (Service, error)
	RegisterService(service Service) error
}

// KeyValueStore is a durable string key-value store.
// GetItem reports found=false (and no error) for absent keys.
type KeyValueStore interface {
	GetItem(key string) (value string, found bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces identifiers of the form <prefix>_<suffix>.
type IDGenerator interface {
	NewID(prefix string) string
}

// StyleSurface is the global rendering surface themes are applied to.
// ReplaceThemeClass removes every existing theme-<name> marker before adding className.
type StyleSurface interface {
	SetProperty(name, value string)
	ReplaceThemeClass(className string)
}
