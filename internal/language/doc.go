// Package language validates BCP 47 language tags against the set of
// languages the course builder can translate and speak, and maps them to the
// locales the speech provider expects.
package language
