package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseForceFlag(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{" true ", true},
		{"TRUE", false},
		{"1", false},
		{"yes", false},
		{"", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseForceFlag(tt.value))
		})
	}
}

func TestEntityLabel(t *testing.T) {
	assert.Equal(t, "event", entityLabel("events"))
	assert.Equal(t, "area", entityLabel("areas"))
	assert.Equal(t, "vendor", entityLabel("vendors"))
	assert.Equal(t, "event category", entityLabel("event_categories"))
	assert.Equal(t, "rental product", entityLabel("rental_products"))
}

func TestDeleteRulesStayOneLevelDeep(t *testing.T) {
	// Dependents of a guarded parent must never themselves be guarded
	// parents of further rules through the same relation.
	for parent, rules := range deleteRules {
		for _, rule := range rules {
			assert.NotEqual(t, parent, rule.Collection, "self-referencing rule on %s", parent)
		}
	}
}
