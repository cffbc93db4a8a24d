//go:build darwin

// Package platform holds the small amount of OS specific glue the tray app needs.
package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

void setAccessoryPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}

void activateApp(void) {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

import "github.com/rs/zerolog/log"

// HideDockIcon turns the app into a menu bar only accessory
func HideDockIcon() {
	log.Debug().Msg("Setting accessory activation policy")
	C.setAccessoryPolicy()
}

// BringToFront activates the app so a newly shown window gets focus
func BringToFront() {
	C.activateApp()
}
