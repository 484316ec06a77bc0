// Package config loads, normalizes, and validates audiocourse configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GOOGLE_APPLICATION_CREDENTIALS. The Config type centralizes the course,
// state, and log locations plus the speech and build knobs, so every command
// discovers them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
