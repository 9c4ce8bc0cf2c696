package labels

import "insights-display-service/internal/insights/core/domain"

const allEventsLabel = "all events"

var pathTypeLabels = map[domain.PathType]string{
	domain.PathPageView:    "page views",
	domain.PathScreen:      "screen views",
	domain.PathCustomEvent: "custom events",
}

// pathTypeAliases maps legacy tags onto their canonical path type.
var pathTypeAliases = map[domain.PathType]domain.PathType{
	"screen": domain.PathScreen,
}

// HumanizePathsEventTypes describes the selected path event types in the
// fixed order page views, screen views, custom events. Selecting none of
// the known types, or all of them, reads as "all events".
func HumanizePathsEventTypes(include []domain.PathType) []string {
	if len(include) == 0 {
		return []string{}
	}

	selected := make(map[domain.PathType]bool, len(include))
	for _, t := range include {
		if canonical, ok := pathTypeAliases[t]; ok {
			t = canonical
		}
		selected[t] = true
	}

	human := make([]string, 0, len(domain.KnownPathTypes))
	for _, t := range domain.KnownPathTypes {
		if selected[t] {
			human = append(human, pathTypeLabels[t])
		}
	}

	if len(human) == 0 || len(human) == len(domain.KnownPathTypes) {
		return []string{allEventsLabel}
	}
	return human
}
