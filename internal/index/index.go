// Package index derives the lookup tables templates use to address the
// records of a hardware description: by name and grouped by GPIO port.
package index

import (
	"github.com/KevinKickass/hwdefs/internal/types"
)

// ByName maps every record name of a section to its record.
// Nil input yields an empty map. Duplicate names are rejected.
func ByName(section string, records []types.Record) (map[string]types.Record, error) {
	index := make(map[string]types.Record, len(records))
	positions := make(map[string]int, len(records))

	for i, rec := range records {
		name, err := rec.Name(section, i)
		if err != nil {
			return nil, err
		}

		if first, exists := positions[name]; exists {
			return nil, &types.DuplicateNameError{
				Section: section,
				Name:    name,
				First:   first,
				Second:  i,
			}
		}

		positions[name] = i
		index[name] = rec
	}

	return index, nil
}

// ByPort groups the records of a section by GPIO port. Records keep
// their input order inside each group.
func ByPort(section string, records []types.Record) (map[string][]types.Record, error) {
	groups := make(map[string][]types.Record)

	for i, rec := range records {
		port, err := rec.Port(section, i)
		if err != nil {
			return nil, err
		}
		groups[port] = append(groups[port], rec)
	}

	return groups, nil
}

// BuildADCIndex indexes ADC inputs by name.
func BuildADCIndex(adcInputs []types.Record) (map[string]types.Record, error) {
	return ByName(types.SectionADCInputs, adcInputs)
}

// BuildADCGPIOPortIndex groups ADC inputs by GPIO port.
func BuildADCGPIOPortIndex(adcInputs []types.Record) (map[string][]types.Record, error) {
	return ByPort(types.SectionADCInputs, adcInputs)
}

func BuildSwitchGPIOPortIndex(switches []types.Record) (map[string][]types.Record, error) {
	return ByPort(types.SectionSwitches, switches)
}

func BuildKeyGPIOPortIndex(keys []types.Record) (map[string][]types.Record, error) {
	return ByPort(types.SectionKeys, keys)
}

func BuildTrimGPIOPortIndex(trims []types.Record) (map[string][]types.Record, error) {
	return ByPort(types.SectionTrims, trims)
}
