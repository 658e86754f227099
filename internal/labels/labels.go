// Package labels holds the display names of the main controls.
package labels

import "sort"

// Label is the display string of a main control and the firmware
// expression that references its translated name.
type Label struct {
	Str   string `json:"str"`
	Local string `json:"local"`
}

// Table is an immutable code -> label mapping.
type Table struct {
	entries map[string]Label
}

// Main returns the label table for the main controls.
func Main() Table {
	return Table{
		entries: map[string]Label{
			// 2 gimbal radios
			"LH": {Str: "Rud", Local: "STR_STICK_NAMES[0]"},
			"LV": {Str: "Ele", Local: "STR_STICK_NAMES[1]"},
			"RV": {Str: "Thr", Local: "STR_STICK_NAMES[2]"},
			"RH": {Str: "Ail", Local: "STR_STICK_NAMES[3]"},
			// surface radios
			"WH": {Str: "Whl", Local: "STR_SURFACE_NAMES[0]"},
			"TR": {Str: "Thr", Local: "STR_SURFACE_NAMES[1]"},
		},
	}
}

func (t Table) Get(code string) (Label, bool) {
	l, ok := t.entries[code]
	return l, ok
}

func (t Table) Len() int {
	return len(t.entries)
}

// Codes returns all control codes sorted.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Values returns a fresh copy of the table in the form templates address
// it: {{ (index .main_labels "LH").str }}.
func (t Table) Values() map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.entries))
	for code, l := range t.entries {
		out[code] = map[string]string{
			"str":   l.Str,
			"local": l.Local,
		}
	}
	return out
}
