package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Option accessors decode a layer's type-specific configuration values.
// Absent keys yield the provided default; present keys that cannot convert
// to the requested type are an error naming the key.

// OptInt returns the integer option for key, or def when absent.
func (d *LayerDesc) OptInt(key string, def int) (int, error) {
	v, ok := d.Options[key]
	if !ok {
		return def, nil
	}
	var out int
	if err := fromCty(v, cty.Number, &out); err != nil {
		return 0, fmt.Errorf("layer %q: option %q: %w", d.Name, key, err)
	}
	return out, nil
}

// OptBool returns the boolean option for key, or def when absent.
func (d *LayerDesc) OptBool(key string, def bool) (bool, error) {
	v, ok := d.Options[key]
	if !ok {
		return def, nil
	}
	var out bool
	if err := fromCty(v, cty.Bool, &out); err != nil {
		return false, fmt.Errorf("layer %q: option %q: %w", d.Name, key, err)
	}
	return out, nil
}

// OptString returns the string option for key, or def when absent.
func (d *LayerDesc) OptString(key string, def string) (string, error) {
	v, ok := d.Options[key]
	if !ok {
		return def, nil
	}
	var out string
	if err := fromCty(v, cty.String, &out); err != nil {
		return "", fmt.Errorf("layer %q: option %q: %w", d.Name, key, err)
	}
	return out, nil
}

// OptIntList returns the integer-list option for key, or nil when absent.
func (d *LayerDesc) OptIntList(key string) ([]int, error) {
	v, ok := d.Options[key]
	if !ok {
		return nil, nil
	}
	var out []int
	if err := fromCty(v, cty.List(cty.Number), &out); err != nil {
		return nil, fmt.Errorf("layer %q: option %q: %w", d.Name, key, err)
	}
	return out, nil
}

// fromCty converts val to want (tuples become lists and so on) and decodes
// it into the Go value behind target.
func fromCty(val cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}
