package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"audiocourse/internal/services"
)

// Configuration is the immutable set of values collected by the setup wizard.
// The zero value is an empty configuration.
type Configuration struct {
	values map[Key]any
}

// New returns an empty configuration.
func New() Configuration {
	return Configuration{}
}

// With returns a copy of c with key set to value. The receiver is unchanged.
// Integer keys accept int, int32 and int64; string keys accept string.
func (c Configuration) With(key Key, value any) (Configuration, error) {
	kind, ok := KindOf(key)
	if !ok {
		return c, services.Wrap(services.ErrConfiguration, "settings", "set", fmt.Sprintf("unknown key %q", key), nil)
	}
	normalized, err := coerce(key, kind, value)
	if err != nil {
		return c, err
	}
	next := make(map[Key]any, len(c.values)+1)
	for k, v := range c.values {
		next[k] = v
	}
	next[key] = normalized
	return Configuration{values: next}, nil
}

// ParseValue converts raw user input into the typed value stored for key.
func ParseValue(key Key, raw string) (any, error) {
	kind, ok := KindOf(key)
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "settings", "parse", fmt.Sprintf("unknown key %q", key), nil)
	}
	trimmed := strings.TrimSpace(raw)
	if kind == KindString {
		return trimmed, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "settings", "parse", fmt.Sprintf("%s expects an integer", key), err)
	}
	return n, nil
}

// Get returns the stored value for key.
func (c Configuration) Get(key Key) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key has a value.
func (c Configuration) Has(key Key) bool {
	_, ok := c.values[key]
	return ok
}

// String returns a string-kind value.
func (c Configuration) String(key Key) (string, bool) {
	v, ok := c.values[key].(string)
	return v, ok
}

// Int returns an integer-kind value.
func (c Configuration) Int(key Key) (int64, bool) {
	v, ok := c.values[key].(int64)
	return v, ok
}

// Len returns the number of stored keys.
func (c Configuration) Len() int {
	return len(c.values)
}

// Keys returns the stored keys in lexical order.
func (c Configuration) Keys() []Key {
	keys := make([]Key, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c Configuration) LanguageCode() string {
	v, _ := c.String(KeyLanguageCode)
	return v
}

func (c Configuration) ProjectID() string {
	v, _ := c.String(KeyProjectID)
	return v
}

func (c Configuration) NumberOfRepeats() int64 {
	v, _ := c.Int(KeyNumberOfRepeats)
	return v
}

// RequireComplete fails when any known key is missing.
func (c Configuration) RequireComplete() error {
	var missing []string
	for _, key := range Keys() {
		if !c.Has(key) {
			missing = append(missing, string(key))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(
		services.ErrConfiguration,
		"settings",
		"validate",
		"missing "+strings.Join(missing, ", ")+"; run `audiocourse configure`",
		nil,
	)
}

func coerce(key Key, kind Kind, value any) (any, error) {
	switch kind {
	case KindInt:
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		}
	case KindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	}
	return nil, services.Wrap(
		services.ErrConfiguration,
		"settings",
		"set",
		fmt.Sprintf("%s expects %s, got %T", key, kind, value),
		nil,
	)
}
