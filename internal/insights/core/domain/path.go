package domain

// PathType tags the kind of step included in a paths insight.
type PathType string

const (
	PathPageView    PathType = "$pageview"
	PathScreen      PathType = "$screen"
	PathCustomEvent PathType = "custom_event"
)

// KnownPathTypes is the full set of path event types, in display order.
var KnownPathTypes = []PathType{PathPageView, PathScreen, PathCustomEvent}
