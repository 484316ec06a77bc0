// Package main hosts the audiocourse CLI entrypoint and command graph.
//
// `configure` runs the setup wizard and saves course settings. `build` turns
// the sentences file into one course folder per sentence, skipping folders
// that already exist. `status`, `history` and `config` are read-mostly
// helpers.
//
// Configuration is loaded lazily so that printing help never touches the
// filesystem.
package main
