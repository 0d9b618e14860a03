package dispatch

import (
	"fmt"

	"github.com/matiasleandrokruk/elabmcp/internal/domain/catalog"
)

// args wraps the decoded tool arguments with typed accessors. JSON numbers
// arrive as float64; every integer accessor coerces accordingly.
type args struct {
	def    catalog.Definition
	values map[string]any
}

func newArgs(def catalog.Definition, values map[string]any) (args, error) {
	if values == nil {
		values = map[string]any{}
	}
	for _, field := range catalog.RequiredFields(def) {
		if _, ok := values[field]; !ok {
			return args{}, fmt.Errorf("missing required argument: %s", field)
		}
	}
	return args{def: def, values: values}, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// Int returns a required integer argument.
func (a args) Int(name string) (int, error) {
	v, ok := a.values[name]
	if !ok {
		return 0, fmt.Errorf("missing required argument: %s", name)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("argument %s must be an integer, got %T", name, v)
	}
	return n, nil
}

// IntDefault returns an integer argument, falling back to the schema
// default when absent.
func (a args) IntDefault(name string) (int, error) {
	if _, ok := a.values[name]; !ok {
		if def, ok := catalog.DefaultFor(a.def, name); ok {
			if n, ok := toInt(def); ok {
				return n, nil
			}
		}
		return 0, nil
	}
	return a.Int(name)
}

// OptInt returns a pointer to an integer argument, or nil when absent.
func (a args) OptInt(name string) (*int, error) {
	if _, ok := a.values[name]; !ok {
		return nil, nil
	}
	n, err := a.Int(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Str returns a required string argument.
func (a args) Str(name string) (string, error) {
	v, ok := a.values[name]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string, got %T", name, v)
	}
	return s, nil
}

// StrDefault returns a string argument, falling back to the schema default
// (or empty) when absent.
func (a args) StrDefault(name string) (string, error) {
	if _, ok := a.values[name]; !ok {
		if def, ok := catalog.DefaultFor(a.def, name); ok {
			if s, ok := def.(string); ok {
				return s, nil
			}
		}
		return "", nil
	}
	return a.Str(name)
}

// OptStr returns a pointer to a string argument, or nil when absent.
func (a args) OptStr(name string) (*string, error) {
	if _, ok := a.values[name]; !ok {
		return nil, nil
	}
	s, err := a.Str(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// StrSlice returns a string-array argument, or nil when absent.
func (a args) StrSlice(name string) ([]string, error) {
	v, ok := a.values[name]
	if !ok {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %s must be an array of strings, got %T", name, v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("argument %s must contain only strings, got %T", name, item)
		}
		out = append(out, s)
	}
	return out, nil
}
