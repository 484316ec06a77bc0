// Package setup defines the configure wizard's steps and the finalizer that
// persists their result.
//
// Steps returns the ordered list the wizard engine runs. Steps that collect
// a value save it under one settings key; the ffmpeg and credentials steps
// block until their prerequisite is present.
package setup
