package types

import "fmt"

// Section names of the hardware description that carry input records.
const (
	SectionADCInputs = "adc_inputs"
	SectionSwitches  = "switches"
	SectionKeys      = "keys"
	SectionTrims     = "trims"
)

// Record field names every input record must carry.
const (
	FieldName = "name"
	FieldPort = "port"
)

// Sections lists the record sections in document order.
var Sections = []string{SectionADCInputs, SectionSwitches, SectionKeys, SectionTrims}

// Record is one input of the hardware description. Besides name and port
// it holds hardware specific fields (channel, polarity, ...) that are
// passed through to templates untouched.
type Record map[string]any

// Text returns the value of field if it is a non-empty string.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Name returns the record name or a MissingFieldError.
func (r Record) Name(section string, position int) (string, error) {
	return r.require(section, position, FieldName)
}

// Port returns the GPIO port designation or a MissingFieldError.
func (r Record) Port(section string, position int) (string, error) {
	return r.require(section, position, FieldPort)
}

func (r Record) require(section string, position int, field string) (string, error) {
	s, ok := r.Text(field)
	if !ok {
		return "", &MissingFieldError{Section: section, Position: position, Field: field}
	}
	return s, nil
}

// Description is the parsed hardware description document.
type Description struct {
	// Fields holds every top-level field exactly as decoded.
	Fields map[string]any

	ADCInputs []Record
	Switches  []Record
	Keys      []Record
	Trims     []Record
}

// NewDescription extracts the record sections from a decoded document.
// Absent or null sections stay nil.
func NewDescription(fields map[string]any) (*Description, error) {
	if fields == nil {
		fields = map[string]any{}
	}

	d := &Description{Fields: fields}

	targets := map[string]*[]Record{
		SectionADCInputs: &d.ADCInputs,
		SectionSwitches:  &d.Switches,
		SectionKeys:      &d.Keys,
		SectionTrims:     &d.Trims,
	}

	for _, section := range Sections {
		records, err := sectionRecords(section, fields[section])
		if err != nil {
			return nil, err
		}
		*targets[section] = records
	}

	return d, nil
}

// Section returns the records of the named section.
func (d *Description) Section(name string) []Record {
	switch name {
	case SectionADCInputs:
		return d.ADCInputs
	case SectionSwitches:
		return d.Switches
	case SectionKeys:
		return d.Keys
	case SectionTrims:
		return d.Trims
	}
	return nil
}

func sectionRecords(section string, raw any) ([]Record, error) {
	if raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("section %s: expected a list, got %T", section, raw)
	}

	records := make([]Record, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %s[%d]: expected an object, got %T", section, i, item)
		}
		records = append(records, Record(obj))
	}

	return records, nil
}
