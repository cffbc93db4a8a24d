package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutostartEntryPlainBinary(t *testing.T) {
	path := filepath.Join("opt", "prayer-bar", "prayer-bar")
	app := AutostartEntry(path)

	assert.Equal(t, autostartName, app.Name)
	assert.Equal(t, []string{path}, app.Exec)
}

func TestAutostartEntryMacBundle(t *testing.T) {
	bundle := filepath.Join("/Applications", "Prayer Bar.app")
	path := filepath.Join(bundle, "Contents", "MacOS", "prayer-bar")

	app := AutostartEntry(path)
	assert.Equal(t, []string{"/usr/bin/open", "-a", bundle}, app.Exec)
}

func TestAppBundleIgnoresLookalikes(t *testing.T) {
	assert.Empty(t, appBundle(filepath.Join("/home", "me", "my.app.d", "prayer-bar")))
}
