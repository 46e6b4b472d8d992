//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/wikiwalk/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterThreshold(t *testing.T) {
	t.Parallel()

	// Create manager that recycles after 3 visits
	manager, err := rod.NewBrowserManager(rod.WithRecycleAfter(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.RecordVisit()
	manager.RecordVisit()
	manager.RecordVisit()

	// Next Browser() call should recycle and return a different instance
	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)

	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeThreshold(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithRecycleAfter(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.RecordVisit()
	manager.RecordVisit()

	secondBrowser := manager.Browser()
	assert.Same(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())
}
