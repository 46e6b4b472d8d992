package goquery

import "github.com/fwojciec/wikiwalk"

var _ wikiwalk.LocatorRegistry = (*Registry)(nil)

// Registry manages flavor-specific content locators and auto-detects the
// flavor of fetched documents. It uses a FlavorDetector to identify the
// markup family and returns the appropriate locator, falling back to a
// generic locator when the flavor is unknown or no specific locator is
// registered.
type Registry struct {
	detector wikiwalk.FlavorDetector
	fallback wikiwalk.ContentLocator
	locators map[wikiwalk.Flavor]wikiwalk.ContentLocator
}

// NewRegistry creates a new Registry with the given detector and fallback
// locator. The fallback locator is used when GetForDocument cannot find a
// specific locator for the detected flavor.
func NewRegistry(detector wikiwalk.FlavorDetector, fallback wikiwalk.ContentLocator) *Registry {
	return &Registry{
		detector: detector,
		fallback: fallback,
		locators: make(map[wikiwalk.Flavor]wikiwalk.ContentLocator),
	}
}

// Get returns the locator for a specific flavor.
// Returns nil if no locator is registered for the flavor.
func (r *Registry) Get(flavor wikiwalk.Flavor) wikiwalk.ContentLocator {
	return r.locators[flavor]
}

// GetForDocument detects the document's flavor and returns the
// appropriate locator. Falls back to the fallback locator if the flavor
// is unknown or no locator is registered for it.
func (r *Registry) GetForDocument(doc *wikiwalk.Document) wikiwalk.ContentLocator {
	flavor := r.detector.Detect(doc.HTML)
	if locator, ok := r.locators[flavor]; ok {
		return locator
	}
	return r.fallback
}

// Register adds a locator for a flavor.
// If a locator is already registered for the flavor, it is replaced.
func (r *Registry) Register(flavor wikiwalk.Flavor, locator wikiwalk.ContentLocator) {
	r.locators[flavor] = locator
}

// List returns all registered flavors.
func (r *Registry) List() []wikiwalk.Flavor {
	flavors := make([]wikiwalk.Flavor, 0, len(r.locators))
	for f := range r.locators {
		flavors = append(flavors, f)
	}
	return flavors
}
