package goquery_test

import (
	"testing"

	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/goquery"
	"github.com/fwojciec/wikiwalk/mock"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	newLocator := func(name string) *mock.ContentLocator {
		return &mock.ContentLocator{
			NameFn: func() string { return name },
		}
	}

	t.Run("returns registered locator for detected flavor", func(t *testing.T) {
		t.Parallel()

		detector := &mock.FlavorDetector{
			DetectFn: func(html string) wikiwalk.Flavor { return wikiwalk.FlavorMediaWiki },
		}
		registry := goquery.NewRegistry(detector, newLocator("fallback"))
		registry.Register(wikiwalk.FlavorMediaWiki, newLocator("mediawiki"))

		locator := registry.GetForDocument(&wikiwalk.Document{Title: "Dog", HTML: "<p/>"})

		assert.Equal(t, "mediawiki", locator.Name())
	})

	t.Run("falls back when flavor is unknown", func(t *testing.T) {
		t.Parallel()

		detector := &mock.FlavorDetector{
			DetectFn: func(html string) wikiwalk.Flavor { return wikiwalk.FlavorUnknown },
		}
		registry := goquery.NewRegistry(detector, newLocator("fallback"))
		registry.Register(wikiwalk.FlavorMediaWiki, newLocator("mediawiki"))

		locator := registry.GetForDocument(&wikiwalk.Document{Title: "Dog", HTML: "<p/>"})

		assert.Equal(t, "fallback", locator.Name())
	})

	t.Run("falls back when no locator is registered for the flavor", func(t *testing.T) {
		t.Parallel()

		detector := &mock.FlavorDetector{
			DetectFn: func(html string) wikiwalk.Flavor { return wikiwalk.FlavorGeneric },
		}
		registry := goquery.NewRegistry(detector, newLocator("fallback"))

		locator := registry.GetForDocument(&wikiwalk.Document{Title: "Dog", HTML: "<p/>"})

		assert.Equal(t, "fallback", locator.Name())
	})

	t.Run("Get returns nil for unregistered flavors", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(&mock.FlavorDetector{}, newLocator("fallback"))

		assert.Nil(t, registry.Get(wikiwalk.FlavorMediaWiki))
	})

	t.Run("List returns registered flavors", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(&mock.FlavorDetector{}, newLocator("fallback"))
		registry.Register(wikiwalk.FlavorMediaWiki, newLocator("mediawiki"))
		registry.Register(wikiwalk.FlavorGeneric, newLocator("generic"))

		assert.ElementsMatch(t, []wikiwalk.Flavor{wikiwalk.FlavorMediaWiki, wikiwalk.FlavorGeneric}, registry.List())
	})
}
