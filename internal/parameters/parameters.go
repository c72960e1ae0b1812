// Package parameters parses the `key=value,...` override strings given in the command line.
//
// Values are read with GetParamOr or PopParamOr. Callers pop every key they know about, and then
// call CheckEmpty to report the keys left over as unknown.
package parameters

import (
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/pkg/errors"
	"slices"
	"strconv"
	"strings"
)

// Params maps override keys to their unparsed values.
type Params map[string]string

// NewFromConfigString parses "key1=value1,key2,key3=value3". A key without "=" gets an empty
// value, which GetParamOr reads as true for booleans. Values may contain "=", but not ",".
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// Value types supported by GetParamOr and PopParamOr.
type Value interface {
	bool | int | float32 | float64 | string
}

// PopParamOr is like GetParamOr, but it also deletes the key from params.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr parses the value of key to T if present, or returns defaultValue otherwise.
//
// For bool, a key without a value is true. For numbers, an empty value keeps defaultValue.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.Atoi(value)
	case float32:
		if value == "" {
			return defaultValue, nil
		}
		var f float64
		f, err = strconv.ParseFloat(value, 32)
		parsed = float32(f)
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			err = errors.New("want true or false")
		}
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// PopList pops key and splits its value by sep, dropping empty items. It returns nil if the key is
// not set.
func PopList(params Params, key, sep string) []string {
	value, exists := params[key]
	if !exists {
		return nil
	}
	delete(params, key)
	var items []string
	for _, item := range strings.Split(value, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// CheckEmpty returns an error listing the keys left in params, if any.
func CheckEmpty(params Params) error {
	if len(params) == 0 {
		return nil
	}
	return errors.Errorf("unknown parameter(s): %s", strings.Join(slices.Collect(generics.SortedKeys(params)), ", "))
}
