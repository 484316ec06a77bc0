// Package audio assembles course tracks from synthesized speech clips.
//
// An Assembler concatenates speech files and generated silence with a single
// ffmpeg filter graph and encodes the result as Ogg Opus. Output is written to
// a temporary sibling and renamed, so a failed run never leaves a truncated
// track behind.
package audio
