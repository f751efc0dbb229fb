package model

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON accepts the label as a boolean or as 0/1.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw struct {
		Talent Talent          `json:"talent"`
		Job    Job             `json:"job"`
		Label  json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Talent, s.Job = raw.Talent, raw.Job

	switch string(raw.Label) {
	case "true", "1", "1.0":
		s.Label = true
	case "false", "0", "0.0", "", "null":
		s.Label = false
	default:
		return fmt.Errorf("label: unsupported value %s", raw.Label)
	}
	return nil
}
