package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned when a settings value is out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// Password policies and audit frequencies offered by the settings form.
var (
	PasswordPolicies = []string{"basic", "strong", "complex"}
	AuditFrequencies = []string{"monthly", "quarterly", "biannual", "annual"}
)

// Settings holds network-wide console settings.
type Settings struct {
	SystemName       string `json:"systemName"`
	Organization     string `json:"organization"`
	AutoRefresh      bool   `json:"autoRefresh"`
	SessionTimeout   int    `json:"sessionTimeout"` // minutes
	PasswordPolicy   string `json:"passwordPolicy"`
	QualityThreshold int    `json:"qualityThreshold"` // percent
	MaxResponseTime  int    `json:"maxResponseTime"`  // seconds
	AuditFrequency   string `json:"auditFrequency"`
	DataRetention    int    `json:"dataRetention"` // years
	CacheDuration    int    `json:"cacheDuration"` // minutes
	MaxConnections   int    `json:"maxConnections"`
}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		SystemName:       "AID-MQAN Network",
		Organization:     "Healthcare Quality Assurance",
		AutoRefresh:      true,
		SessionTimeout:   60,
		PasswordPolicy:   "strong",
		QualityThreshold: 85,
		MaxResponseTime:  30,
		AuditFrequency:   "quarterly",
		DataRetention:    7,
		CacheDuration:    15,
		MaxConnections:   1000,
	}
}

// Validate checks ranges and enumerations.
func (s Settings) Validate() error {
	switch {
	case s.SystemName == "":
		return fmt.Errorf("%w: system name is required", ErrInvalidSettings)
	case s.QualityThreshold < 0 || s.QualityThreshold > 100:
		return fmt.Errorf("%w: quality threshold %d outside 0-100", ErrInvalidSettings, s.QualityThreshold)
	case s.SessionTimeout <= 0:
		return fmt.Errorf("%w: session timeout must be positive", ErrInvalidSettings)
	case !contains(PasswordPolicies, s.PasswordPolicy):
		return fmt.Errorf("%w: unknown password policy %q", ErrInvalidSettings, s.PasswordPolicy)
	case !contains(AuditFrequencies, s.AuditFrequency):
		return fmt.Errorf("%w: unknown audit frequency %q", ErrInvalidSettings, s.AuditFrequency)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
