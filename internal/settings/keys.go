package settings

import "sort"

// Key names one entry of the persisted settings artifact.
type Key string

const (
	KeyLanguageCode    Key = "languageCode"
	KeyNumberOfRepeats Key = "numberOfRepeats"
	KeyProjectID       Key = "projectId"
)

// Kind is the value type stored under a key.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

func (k Kind) String() string {
	if k == KindInt {
		return "integer"
	}
	return "string"
}

var knownKeys = map[Key]Kind{
	KeyLanguageCode:    KindString,
	KeyNumberOfRepeats: KindInt,
	KeyProjectID:       KindString,
}

// KindOf reports the value kind for key and whether key belongs to the closed set.
func KindOf(key Key) (Kind, bool) {
	kind, ok := knownKeys[key]
	return kind, ok
}

// IsKnown reports whether key belongs to the closed set.
func IsKnown(key Key) bool {
	_, ok := knownKeys[key]
	return ok
}

// Keys returns every known key in lexical order.
func Keys() []Key {
	keys := make([]Key, 0, len(knownKeys))
	for key := range knownKeys {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
