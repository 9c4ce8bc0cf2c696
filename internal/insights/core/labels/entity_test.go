package labels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
)

var eventLabels = map[string]string{
	"$pageview":    "Pageview",
	"$autocapture": "Autocapture",
	"signed up":    "Signup completed",
}

func TestEntityDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		entity    domain.EntityFilter
		useCustom bool
		want      string
		wantOK    bool
	}{
		{
			name:      "custom name wins",
			entity:    domain.EntityFilter{Type: domain.EntityEvents, ID: domain.String("$pageview"), Name: "$pageview", CustomName: "Landing views"},
			useCustom: true,
			want:      "Landing views",
			wantOK:    true,
		},
		{
			name:   "custom name ignored",
			entity: domain.EntityFilter{Type: domain.EntityEvents, ID: domain.String("$pageview"), Name: "$pageview", CustomName: "Landing views"},
			want:   "Pageview",
			wantOK: true,
		},
		{
			name:      "blank custom name",
			entity:    domain.EntityFilter{Type: domain.EntityEvents, ID: domain.String("signup"), Name: "signup", CustomName: "   "},
			useCustom: true,
			want:      "signup",
			wantOK:    true,
		},
		{
			name:   "mixed case name matches lower-cased config key",
			entity: domain.EntityFilter{Type: domain.EntityEvents, ID: domain.String("Signed Up"), Name: "Signed Up"},
			want:   "Signup completed",
			wantOK: true,
		},
		{
			name:   "all events",
			entity: domain.EntityFilter{Type: domain.EntityEvents, ID: domain.Null(), Name: "whatever"},
			want:   "All events",
			wantOK: true,
		},
		{
			name:   "action falls back to id",
			entity: domain.EntityFilter{Type: domain.EntityActions, ID: domain.Number(12), Name: " "},
			want:   "12",
			wantOK: true,
		},
		{
			name:   "nothing",
			entity: domain.EntityFilter{Type: domain.EntityActions, ID: domain.Number(0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := labels.EntityDisplayName(tt.entity, eventLabels, tt.useCustom)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
