package platform

import "strings"

// DefaultAppName is reported to the notification service when Options does
// not name the application.
const DefaultAppName = "colorbook"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification service.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent asks the notification service to keep the notice visible
	// longer. Used for failures.
	Urgent bool
}

func (o Options) appName() string {
	if name := strings.TrimSpace(o.AppName); name != "" {
		return name
	}
	return DefaultAppName
}

// timeoutMillis is the display duration requested from services that take
// one.
func (o Options) timeoutMillis() int32 {
	if o.Urgent {
		return 10000
	}
	return 5000
}
