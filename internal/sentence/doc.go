// Package sentence reads the candidate phrase file and decides which lines
// become course units.
//
// A line qualifies when it holds at least two Unicode code points. The rule
// is judged on the line as read, so a line of two spaces qualifies here and
// is rejected later when its folder name turns out empty.
package sentence
