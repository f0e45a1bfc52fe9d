// Package ncode tokenizes and classifies Mazak Matrix NC program lines.
//
// Every function in this package is pure: the same line always yields the
// same result and no scan state is kept between calls.
package ncode

import (
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/turretlint/internal/model"
)

const (
	waitMFirst = 950
	waitMLast  = 997
	waitPFirst = 1
	waitPLast  = 99999999
)

var (
	rxGCode   = regexp.MustCompile(`\bG(\d{1,3}\.?\d*)\b`)
	rxFeed    = regexp.MustCompile(`\bF(\d+(?:\.\d*)?|\.\d+)\b`)
	rxSpindle = regexp.MustCompile(`\bS(\d+)\b`)
	rxWaitM   = regexp.MustCompile(`\bM(\d{3})\b`)
	rxWaitP   = regexp.MustCompile(`\bP(\d{1,8})\b`)
	rxWord    = regexp.MustCompile(`([A-Z])([+-]?\d*\.?\d+)`)
)

// ExtractGCodes returns every G-code on the line, left to right, duplicates kept.
func ExtractGCodes(line string) []string {
	matches := rxGCode.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}

	codes := make([]string, 0, len(matches))
	for _, match := range matches {
		codes = append(codes, "G"+match[1])
	}

	return codes
}

// ExtractFeedRate returns the value of the first F word.
func ExtractFeedRate(line string) (float64, bool) {
	match := rxFeed.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(match[1], "."), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// ExtractSpindleSpeed returns the value of the first S word.
func ExtractSpindleSpeed(line string) (int, bool) {
	match := rxSpindle.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}

	s, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return s, true
}

// DetectWaitCode finds a synchronization token: an M-code in M950..M997 or a
// P-code valued 1..99999999. The M form wins when both are present.
func DetectWaitCode(line string) (m.WaitCode, bool) {
	for _, match := range rxWaitM.FindAllStringSubmatch(line, -1) {
		v, err := strconv.Atoi(match[1])
		if err == nil && v >= waitMFirst && v <= waitMLast {
			return m.WaitCode{Kind: m.WaitM, Code: match[0], Value: v}, true
		}
	}

	for _, match := range rxWaitP.FindAllStringSubmatch(line, -1) {
		v, err := strconv.Atoi(match[1])
		if err == nil && v >= waitPFirst && v <= waitPLast {
			return m.WaitCode{Kind: m.WaitP, Code: match[0], Value: v}, true
		}
	}

	return m.WaitCode{}, false
}

// Word is one address/value pair of a block, e.g. X-12.5.
type Word struct {
	Address byte
	Value   string
	Start   int // byte offset of the address letter
	End     int // byte offset just past the value
}

func (w Word) String() string {
	return string(w.Address) + w.Value
}

// Words splits a line into address words. Text between words is not returned.
func Words(line string) []Word {
	idx := rxWord.FindAllStringSubmatchIndex(line, -1)
	words := make([]Word, 0, len(idx))

	for _, loc := range idx {
		words = append(words, Word{
			Address: line[loc[2]],
			Value:   line[loc[4]:loc[5]],
			Start:   loc[0],
			End:     loc[1],
		})
	}

	return words
}
