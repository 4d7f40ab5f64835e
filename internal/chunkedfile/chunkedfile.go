// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile provides utilities for testing that source code
// errors are reported in the appropriate places.
//
// A chunked file consists of several chunks of input text separated by
// "---" lines.  Each chunk is an input to the program under test, such
// as the expression parser.  Lines containing "###" are interpreted as
// expectations of failure: the following text is a Go string literal
// denoting a regular expression that should match the failure message.
// In Structured Text the marker usually sits in a line comment.
//
// Example:
//
//	a + ) // ### "unexpected '\\)'"
//	---
//	(a + b // ### "want '\\)'"
//
// A client test feeds each chunk of text into the program under test,
// then calls chunk.GotError for each error that actually occurred.  Any
// discrepancy between the actual and expected errors is reported using
// the client's reporter, which is typically a testing.T.
package chunkedfile // import "github.com/stlang/stc/internal/chunkedfile"

import (
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// A Chunk is a portion of a source file.
// It contains a set of expected errors.
type Chunk struct {
	Source   string
	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read parses a chunked file and returns its chunks.
// It reports failures using the reporter.
//
// Error messages of the form "file.st:line:col: ..." are prefixed
// by a newline so that the Go source position added by (*testing.T).Errorf
// appears on a separate line so as not to confuse editors.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	eol := "\n"
	if runtime.GOOS == "windows" {
		eol = "\r\n"
	}
	return readBytes(filename, data, report, eol)
}

func readBytes(filename string, data []byte, report Reporter, eol string) (chunks []Chunk) {
	linenum := 1
	for _, chunk := range strings.Split(string(data), eol+"---"+eol) {
		// Pad with newlines so the line numbers match the original file.
		src := strings.Repeat("\n", linenum-1) + chunk

		wantErrs := make(map[int]*regexp.Regexp)
		for _, line := range strings.Split(chunk, "\n") {
			if rx := expectation(filename, linenum, line, report); rx != nil {
				wantErrs[linenum] = rx
			}
			linenum++
		}
		linenum++ // the separator line

		chunks = append(chunks, Chunk{src, filename, report, wantErrs})
	}
	return chunks
}

// expectation returns the pattern of a ### "regexp" comment on line,
// or nil if there is none or it is malformed.
func expectation(filename string, linenum int, line string, report Reporter) *regexp.Regexp {
	hashes := strings.Index(line, "###")
	if hashes < 0 {
		return nil
	}
	rest := strings.TrimSpace(line[hashes+len("###"):])
	pattern, err := strconv.Unquote(rest)
	if err != nil {
		report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, rest)
		return nil
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		report.Errorf("\n%s:%d: %v", filename, linenum, err)
		return nil
	}
	return rx
}

// GotError should be called by the client to report an error at a particular line.
// GotError reports unexpected errors to the chunk's reporter.
func (chunk *Chunk) GotError(linenum int, msg string) {
	if rx, ok := chunk.wantErrs[linenum]; ok {
		delete(chunk.wantErrs, linenum)
		if !rx.MatchString(msg) {
			chunk.report.Errorf("\n%s:%d: error %q does not match pattern %q", chunk.filename, linenum, msg, rx)
		}
	} else {
		chunk.report.Errorf("\n%s:%d: unexpected error: %v", chunk.filename, linenum, msg)
	}
}

// Done should be called by the client to indicate that the chunk has no more errors.
// Done reports expected errors that did not occur to the chunk's reporter.
func (chunk *Chunk) Done() {
	for linenum, rx := range chunk.wantErrs {
		chunk.report.Errorf("\n%s:%d: expected error matching %q", chunk.filename, linenum, rx)
	}
}
