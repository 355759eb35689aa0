package models

import "encoding/json"

type Task struct {
	ID          int     `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
	Completed   bool    `json:"completed" db:"completed"`
}

// CreateTask is the payload for adding a task. Completed is a pointer so an
// omitted field falls back to the column default.
type CreateTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UpdateTask carries a partial update. Absent fields are left untouched;
// description distinguishes absent from an explicit null, which clears it.
type UpdateTask struct {
	Title       *string        `json:"title"`
	Description NullableString `json:"description"`
	Completed   *bool          `json:"completed"`
}

// NullableString records whether a JSON field was present at all, so an
// explicit null can be told apart from an omitted key.
type NullableString struct {
	Set   bool
	Value *string
}

func (s *NullableString) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = nil
		return nil
	}
	return json.Unmarshal(data, &s.Value)
}
