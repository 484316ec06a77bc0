// Package textutil provides text helpers for turning phrases into folder names
// and word lists.
//
// SanitizePathSegment is deterministic: the same phrase always yields the
// same folder name, which is what makes course builds idempotent.
package textutil
