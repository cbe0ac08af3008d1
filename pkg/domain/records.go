package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Record keys. Their names and shapes are shared with the other wizard steps.
const (
	RecordStep1 = "step1Data"
	RecordStep2 = "step2Data"
	RecordStep3 = "step3Data"
)

// Step1Data is written by the destination step.
type Step1Data struct {
	Destination string `json:"destination" mapstructure:"destination"`
}

// Step2Data is written by the interests step.
type Step2Data struct {
	Interests []string `json:"interests" mapstructure:"interests"`
}

// Step3Data is the place step's hand-off: the selected place names.
type Step3Data struct {
	Places []string `json:"places" mapstructure:"places"`
}

// PutRecord stores v under key as a plain map, so it survives JSON-backed stores unchanged.
func (s *Session) PutRecord(key string, v any) error {
	var m map[string]any
	if err := mapstructure.Decode(v, &m); err != nil {
		return fmt.Errorf("failed to encode record %s: %w", key, err)
	}
	if s.Records == nil {
		s.Records = make(map[string]any)
	}
	s.Records[key] = m
	return nil
}

// Record decodes the record stored under key into out.
// It returns false when the record is absent.
func (s *Session) Record(key string, out any) (bool, error) {
	raw, ok := s.Records[key]
	if !ok || raw == nil {
		return false, nil
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode record %s: %w", key, err)
	}
	return true, nil
}

// DeleteRecord removes the record stored under key.
func (s *Session) DeleteRecord(key string) {
	delete(s.Records, key)
}
