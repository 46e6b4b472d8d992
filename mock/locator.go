package mock

import "github.com/fwojciec/wikiwalk"

var _ wikiwalk.ContentLocator = (*ContentLocator)(nil)

// ContentLocator is a mock implementation of wikiwalk.ContentLocator.
type ContentLocator struct {
	LocateFn func(doc *wikiwalk.Document) (*wikiwalk.Region, error)
	NameFn   func() string
}

func (l *ContentLocator) Locate(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
	return l.LocateFn(doc)
}

func (l *ContentLocator) Name() string {
	if l.NameFn == nil {
		return "mock"
	}
	return l.NameFn()
}

var _ wikiwalk.FlavorDetector = (*FlavorDetector)(nil)

// FlavorDetector is a mock implementation of wikiwalk.FlavorDetector.
type FlavorDetector struct {
	DetectFn func(html string) wikiwalk.Flavor
}

func (d *FlavorDetector) Detect(html string) wikiwalk.Flavor {
	if d.DetectFn == nil {
		return wikiwalk.FlavorUnknown
	}
	return d.DetectFn(html)
}

var _ wikiwalk.LocatorRegistry = (*LocatorRegistry)(nil)

// LocatorRegistry is a mock implementation of wikiwalk.LocatorRegistry.
type LocatorRegistry struct {
	GetFn            func(flavor wikiwalk.Flavor) wikiwalk.ContentLocator
	GetForDocumentFn func(doc *wikiwalk.Document) wikiwalk.ContentLocator
	RegisterFn       func(flavor wikiwalk.Flavor, locator wikiwalk.ContentLocator)
	ListFn           func() []wikiwalk.Flavor
}

func (r *LocatorRegistry) Get(flavor wikiwalk.Flavor) wikiwalk.ContentLocator {
	return r.GetFn(flavor)
}

func (r *LocatorRegistry) GetForDocument(doc *wikiwalk.Document) wikiwalk.ContentLocator {
	return r.GetForDocumentFn(doc)
}

func (r *LocatorRegistry) Register(flavor wikiwalk.Flavor, locator wikiwalk.ContentLocator) {
	if r.RegisterFn != nil {
		r.RegisterFn(flavor, locator)
	}
}

func (r *LocatorRegistry) List() []wikiwalk.Flavor {
	if r.ListFn == nil {
		return nil
	}
	return r.ListFn()
}
