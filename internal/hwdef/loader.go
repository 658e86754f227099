// Package hwdef loads hardware description documents.
package hwdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/KevinKickass/hwdefs/internal/types"
	"go.uber.org/zap"
)

// ErrMalformed is wrapped by every error caused by document content
// rather than by file access.
var ErrMalformed = errors.New("malformed hardware description")

type Loader struct {
	validator *Validator
	logger    *zap.Logger
}

// NewLoader creates a loader. With validate set, documents are checked
// against the embedded schema before they are indexed.
func NewLoader(validate bool, logger *zap.Logger) (*Loader, error) {
	l := &Loader{logger: logger}

	if validate {
		validator, err := NewValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to create validator: %w", err)
		}
		l.validator = validator
	}

	return l, nil
}

func (l *Loader) Load(path string) (*types.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hardware description: %w", err)
	}

	desc, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.Debug("Hardware description loaded",
		zap.String("path", path),
		zap.Int("adc_inputs", len(desc.ADCInputs)),
		zap.Int("switches", len(desc.Switches)),
		zap.Int("keys", len(desc.Keys)),
		zap.Int("trims", len(desc.Trims)))

	return desc, nil
}

func (l *Loader) Parse(data []byte) (*types.Description, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root must be an object, got %s", ErrMalformed, jsonKind(doc))
	}

	if l.validator != nil {
		if err := l.validator.Validate(doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	desc, err := types.NewDescription(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return desc, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
