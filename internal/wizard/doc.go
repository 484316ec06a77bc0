// Package wizard drives an ordered list of setup steps.
//
// Each step explains itself once, then prompts until its validator accepts
// the input. Steps may additionally require a file to exist and may save
// their input under a settings key. Typing "exit" or "quit" at any prompt,
// including while a file check is pending, ends the run with ErrExit; the
// caller decides how to terminate.
package wizard
