package wikiwalk

// Flavor identifies the markup family of a fetched document.
type Flavor string

// Supported markup flavors.
const (
	FlavorUnknown   Flavor = ""
	FlavorMediaWiki Flavor = "mediawiki"
	FlavorGeneric   Flavor = "generic"
)

// ContentLocator isolates the main article body of a document, excluding
// navigation boxes, infoboxes, disambiguation notices, and the trailing
// reference sections.
type ContentLocator interface {
	// Locate returns the main-content region of the document.
	// Returns ENOTFOUND if the document has no recognizable article body.
	Locate(doc *Document) (*Region, error)

	// Name returns the locator's identifier (e.g., "mediawiki", "trafilatura").
	Name() string
}

// FlavorDetector identifies the markup flavor of fetched HTML.
type FlavorDetector interface {
	// Detect analyzes HTML and returns the identified flavor.
	// Returns FlavorUnknown if the flavor cannot be determined.
	Detect(html string) Flavor
}

// LocatorRegistry manages flavor-specific content locators.
type LocatorRegistry interface {
	// Get returns the locator for a specific flavor.
	// Returns nil if no locator is registered for the flavor.
	Get(flavor Flavor) ContentLocator

	// GetForDocument detects the document's flavor and returns the
	// appropriate locator. Falls back to a generic locator if the flavor
	// is unknown.
	GetForDocument(doc *Document) ContentLocator

	// Register adds a locator for a flavor.
	Register(flavor Flavor, locator ContentLocator)

	// List returns all registered flavors.
	List() []Flavor
}
