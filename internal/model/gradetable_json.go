package model

import "encoding/json"

// MarshalJSON encodes the table as an ordered array of rows.
func (t GradeTable) MarshalJSON() ([]byte, error) {
	if t.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.entries)
}

// UnmarshalJSON decodes an ordered array of rows.
func (t *GradeTable) UnmarshalJSON(data []byte) error {
	var entries []GradeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	t.entries = entries
	return nil
}
