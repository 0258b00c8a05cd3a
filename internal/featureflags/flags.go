// Package featureflags provides runtime toggles for dataset operations.
package featureflags

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrFlagNotFound is returned when a feature flag is not found.
var ErrFlagNotFound = errors.New("feature flag not found")

// Well-known feature flag keys.
const (
	// FlagDisableRemoteFetch blocks loading datasets from remote URLs.
	FlagDisableRemoteFetch = "disable_remote_fetch"

	// FlagDisableSampleGenerator blocks the built-in sample dataset.
	FlagDisableSampleGenerator = "disable_sample_generator"

	// FlagMaxUploadBytes caps the size of uploaded CSV files.
	FlagMaxUploadBytes = "max_upload_bytes"
)

// DefaultMaxUploadBytes is the upload cap when the flag is unset.
const DefaultMaxUploadBytes = 16 << 20 // 16 MiB

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// Int64Value returns the flag value as an int64.
// Returns the default value if the flag is nil or not a number.
func (f *Flag) Int64Value(defaultValue int64) int64 {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		// JSON unmarshals numbers as float64
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return defaultValue
	}
}

// JSONValue unmarshals the flag value into the target struct.
func (f *Flag) JSONValue(target interface{}) error {
	if f == nil {
		return nil
	}
	data, err := json.Marshal(f.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// DefaultFlags returns the default feature flags for the application.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagDisableRemoteFetch: {
			Key:       FlagDisableRemoteFetch,
			Value:     false,
			UpdatedAt: now,
		},
		FlagDisableSampleGenerator: {
			Key:       FlagDisableSampleGenerator,
			Value:     false,
			UpdatedAt: now,
		},
		FlagMaxUploadBytes: {
			Key:       FlagMaxUploadBytes,
			Value:     DefaultMaxUploadBytes,
			UpdatedAt: now,
		},
	}
}
