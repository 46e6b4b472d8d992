package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// Ensure LoggingRegistry implements wikiwalk.LocatorRegistry.
var _ wikiwalk.LocatorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a LocatorRegistry with debug logging for flavor detection.
type LoggingRegistry struct {
	next     wikiwalk.LocatorRegistry
	detector wikiwalk.FlavorDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next wikiwalk.LocatorRegistry, detector wikiwalk.FlavorDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(flavor wikiwalk.Flavor) wikiwalk.ContentLocator {
	return r.next.Get(flavor)
}

// GetForDocument detects the flavor, logs it, and returns the appropriate locator.
func (r *LoggingRegistry) GetForDocument(doc *wikiwalk.Document) wikiwalk.ContentLocator {
	begin := time.Now()
	flavor := r.detector.Detect(doc.HTML)
	flavorName := string(flavor)
	if flavor == wikiwalk.FlavorUnknown {
		flavorName = "(unknown)"
	}
	r.logger.Info("flavor detection",
		"title", string(doc.Title),
		"flavor", flavorName,
		"duration", time.Since(begin),
	)
	return r.next.GetForDocument(doc)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(flavor wikiwalk.Flavor, locator wikiwalk.ContentLocator) {
	r.next.Register(flavor, locator)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []wikiwalk.Flavor {
	return r.next.List()
}
