// Package settings holds the Configuration collected by the setup wizard and
// persists it as a flat TOML artifact.
//
// The key set is closed: languageCode, numberOfRepeats and projectId. Values
// are immutable once accumulated; With returns a new Configuration.
package settings
