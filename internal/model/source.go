// Package model defines the data structures shared by the NC program analyser.
package model

// Path represents a file system path.
type Path string

// StdinPath is the pseudo path that reads a program from standard input.
const StdinPath Path = "-"

// Program is one NC program loaded for analysis.
type Program struct {
	Origin Path
	Hash   string // sha256 of Text
	Text   string
}

// ProgramLine is one line of source text plus its 1-based position.
type ProgramLine struct {
	Text   string
	Number int
}

// StreamFile describes one stream written by a split.
type StreamFile struct {
	Stream string // "common", "upper" or "lower"
	Path   Path
	Lines  int
}
