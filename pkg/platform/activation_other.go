//go:build !darwin

package platform

// HideDockIcon is a no-op outside macOS
func HideDockIcon() {}

// BringToFront is a no-op outside macOS; the window manager focuses new windows
func BringToFront() {}
