package types

import "fmt"

// MissingFieldError reports a record without a required string field.
type MissingFieldError struct {
	Section  string
	Position int
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s[%d]: missing field %q", e.Section, e.Position, e.Field)
}

// DuplicateNameError reports two records of one section sharing a name.
type DuplicateNameError struct {
	Section string
	Name    string
	First   int
	Second  int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate name %q at positions %d and %d",
		e.Section, e.Name, e.First, e.Second)
}

// ContextKeyError reports a derived context key that would shadow a
// top-level field of the hardware description.
type ContextKeyError struct {
	Key string
}

func (e *ContextKeyError) Error() string {
	return fmt.Sprintf("context key %q collides with a hardware description field", e.Key)
}
