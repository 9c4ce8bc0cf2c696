package labels

import (
	"strings"

	"insights-display-service/internal/insights/core/domain"
)

const allEventsEntityName = "All events"

// EntityDisplayName picks the label for an insight series: the custom name
// (when useCustomName is set), then the name mapped through eventLabels,
// then the id. An events series with a null id is "All events". Names
// missing from eventLabels are retried in lower case, the form config keys
// are stored in.
func EntityDisplayName(entity domain.EntityFilter, eventLabels map[string]string, useCustomName bool) (string, bool) {
	customName := notBlank(entity.CustomName)
	name := notBlank(entity.Name)
	if label, ok := eventLabel(eventLabels, name); ok {
		name = label
	}
	if entity.Type == domain.EntityEvents && entity.ID.IsNull() {
		name = allEventsEntityName
	}

	switch {
	case useCustomName && customName != "":
		return customName, true
	case name != "":
		return name, true
	case entity.ID.Truthy():
		return entity.ID.String(), true
	default:
		return "", false
	}
}

func eventLabel(eventLabels map[string]string, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if label, ok := eventLabels[name]; ok {
		return label, true
	}
	label, ok := eventLabels[strings.ToLower(name)]
	return label, ok
}

func notBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
