// Package diff computes which fields of an insight filter changed between
// two versions, for change telemetry.
package diff

import (
	"maps"
	"slices"
	"strconv"

	"insights-display-service/internal/insights/core/domain"
)

// Result maps a synthetic changed_* key to the previous value.
type Result map[string]domain.Value

// Keys returns the changed keys in sorted order.
func (r Result) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

func (r Result) Empty() bool {
	return len(r) == 0
}

// entityList describes one of the two filter fields holding nested entity
// filters. Only these fields are recursed into.
type entityList struct {
	lengthKey  string
	prefixStem string
}

var entityLists = map[string]entityList{
	domain.FieldEvents:  {lengthKey: "changed_events_length", prefixStem: "event_"},
	domain.FieldActions: {lengthKey: "changed_actions_length", prefixStem: "action_"},
}

// ExtractObjectDiffKeys reports the fields of newObj whose value differs
// from oldObj, keyed "changed_<prefix><field>" and holding the old value.
// Falsy values compare as empty lists. Entity lists of different length
// report "changed_<list>_length"; equal-length lists are compared entry by
// entry with an "event_<i>_" or "action_<i>_" prefix. Fields only present
// in oldObj are not reported, and an empty oldObj yields an empty result.
func ExtractObjectDiffKeys(oldObj, newObj domain.Filter, prefix string) Result {
	changed := Result{}
	if oldObj.Len() == 0 {
		return changed
	}

	for _, field := range newObj.Fields() {
		newVal := orEmptyList(field.Value)
		oldRaw, _ := oldObj.Get(field.Key)
		oldVal := orEmptyList(oldRaw)

		if newVal.Equal(oldVal) {
			continue
		}

		if list, ok := entityLists[field.Key]; ok {
			if diffEntities(changed, list, oldVal, newVal) {
				continue
			}
		}

		changed["changed_"+prefix+field.Key] = oldVal
	}

	return changed
}

// diffEntities records changes between two entity lists and reports false
// when either side is not a list of objects.
func diffEntities(changed Result, list entityList, oldVal, newVal domain.Value) bool {
	oldEntities, oldOK := oldVal.Entities()
	newEntities, newOK := newVal.Entities()
	if !oldOK || !newOK {
		return false
	}

	if len(newEntities) != len(oldEntities) {
		changed[list.lengthKey] = domain.Int(int64(len(oldEntities)))
		return true
	}

	for i := range newEntities {
		prefix := list.prefixStem + strconv.Itoa(i) + "_"
		maps.Copy(changed, ExtractObjectDiffKeys(oldEntities[i], newEntities[i], prefix))
	}
	return true
}

func orEmptyList(v domain.Value) domain.Value {
	if !v.Truthy() {
		return domain.List()
	}
	return v
}
