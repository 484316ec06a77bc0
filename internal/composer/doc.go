// Package composer produces the audio for one course unit.
//
// The lead track speaks the phrase once plus numberOfRepeats more times. The
// word track speaks each distinct word of the phrase followed by its
// translation into the learner's native language. The repeat track is a
// verified byte copy of the lead track. Speech clips are cached on disk so
// shared words and reruns do not call the speech provider again.
package composer
