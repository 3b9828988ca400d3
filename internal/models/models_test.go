package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeLevel(t *testing.T) {
	tests := []struct {
		load int
		want LoadLevel
	}{
		{0, LoadNormal},
		{74, LoadNormal},
		{75, LoadHigh},
		{89, LoadHigh},
		{90, LoadCritical},
		{100, LoadCritical},
	}
	for _, tt := range tests {
		got := NodeStatus{Load: tt.load}.Level()
		assert.Equal(t, tt.want, got, "load %d", tt.load)
	}
	assert.Equal(t, "critical", LoadCritical.String())
}

func TestFilterSpec(t *testing.T) {
	var zero FilterSpec
	assert.True(t, zero.IsZero())
	assert.Equal(t, "none", zero.String())
	assert.Equal(t, FacetAll, zero.Facet("status"))

	allOnly := FilterSpec{Facets: map[string]string{"status": "all", "type": ""}}
	assert.True(t, allOnly.IsZero())

	spec := zero.WithSearch("node").WithFacet("status", "resolved")
	assert.False(t, spec.IsZero())
	assert.Equal(t, "resolved", spec.Facet("status"))
	assert.Equal(t, "'node' status=resolved", spec.String())
	assert.Empty(t, zero.Facets, "With* must not modify the receiver")

	clone := spec.Clone()
	clone.Facets["status"] = "active"
	assert.Equal(t, "resolved", spec.Facets["status"])
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty name", func(s *Settings) { s.SystemName = "" }},
		{"threshold above 100", func(s *Settings) { s.QualityThreshold = 101 }},
		{"negative threshold", func(s *Settings) { s.QualityThreshold = -1 }},
		{"zero timeout", func(s *Settings) { s.SessionTimeout = 0 }},
		{"unknown policy", func(s *Settings) { s.PasswordPolicy = "weak" }},
		{"unknown frequency", func(s *Settings) { s.AuditFrequency = "daily" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}
