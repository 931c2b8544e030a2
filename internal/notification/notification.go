// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and
// Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/stoa-client/stoa/internal/logger"
)

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: sending - title=%q, message=%q", title, message)
	// Empty icon path lets beeep pick the platform default.
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Debug("Notification: failed to send: %v", err)
	}
	return err
}

// NewMail notifies that a mailbox room has new activity.
func NewMail(room string, count int) error {
	if count == 1 {
		return Send("stoa", fmt.Sprintf("New message in %s", room))
	}
	return Send("stoa", fmt.Sprintf("%d new messages in %s", count, room))
}
