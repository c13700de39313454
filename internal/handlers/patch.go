package handlers

import (
	"fmt"
	"math"
	"time"
)

// patch is a raw PATCH body. Partial updates need to tell an omitted key
// apart from an explicit JSON null, which struct binding cannot do.
type patch map[string]any

func (p patch) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p patch) isNull(key string) bool {
	v, ok := p[key]
	return ok && v == nil
}

func (p patch) str(key string) (string, error) {
	s, ok := p[key].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

func (p patch) boolean(key string) (bool, error) {
	b, ok := p[key].(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}

// integer accepts a JSON number with no fractional part. encoding/json
// decodes all numbers into float64.
func (p patch) integer(key string) (int, error) {
	f, ok := p[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), nil
}

func (p patch) float(key string) (float64, error) {
	f, ok := p[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func (p patch) date(key, layout string) (time.Time, error) {
	s, err := p.str(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid %s value", key, layout)
	}
	return t, nil
}
