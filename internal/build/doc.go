// Package build turns qualified sentences into course unit folders.
//
// A folder's presence under the course root is the only marker that a unit
// is done, so reruns skip everything already built. Each unit is composed in
// a hidden ".partial-" staging directory, checked for all three tracks, and
// renamed into place; a failure leaves no folder behind. Work on a single
// folder is exclusive within the process and, through file locks under the
// state directory, across processes.
package build
