// Package preflight provides readiness checks for the files, directories,
// and external tools a course build depends on.
//
// The CLI "audiocourse status" command renders RunAll as a table. The
// individual checks are also used by the build command to fail fast before
// any provider call is made.
package preflight
