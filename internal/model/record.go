package model

import "fmt"

// Record is the persisted shape of a Task. Field names are fixed so files
// written by earlier versions keep loading.
//
// Pointers let decoding tell an absent field from a zero value.
type Record struct {
	Description *string `json:"descripcion"`
	Completed   *bool   `json:"completada"`
}

// DecodeError reports a record that is missing a required field.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record: missing field %q", e.Field)
}

// Record maps the task to its persisted form.
func (t Task) Record() Record {
	desc, done := t.Description, t.Completed
	return Record{Description: &desc, Completed: &done}
}

// FromRecord rebuilds a task, restoring the completion flag as stored.
func FromRecord(r Record) (Task, error) {
	if r.Description == nil {
		return Task{}, &DecodeError{Field: "descripcion"}
	}
	if r.Completed == nil {
		return Task{}, &DecodeError{Field: "completada"}
	}
	return Task{Description: *r.Description, Completed: *r.Completed}, nil
}
