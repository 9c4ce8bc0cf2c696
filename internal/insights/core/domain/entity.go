package domain

type EntityType string

const (
	EntityEvents  EntityType = "events"
	EntityActions EntityType = "actions"
)

// EntityFilter is one series of an insight: an event (ID is the event name,
// null for "all events") or an action (ID is numeric).
type EntityFilter struct {
	Type       EntityType
	ID         Value
	Name       string
	CustomName string
}
