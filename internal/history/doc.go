// Package history keeps a SQLite record of build runs and their failed units
// so `audiocourse history` can show what earlier builds did.
//
// The database lives under the state directory. Schema changes ship as
// numbered files in migrations/ and are applied on Open; a database written
// by a newer release is refused with ErrSchemaMismatch.
package history
