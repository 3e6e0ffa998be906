/*
 * errors.go, part of molgraph.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"fmt"
)

// Messages for the fatal format errors.
const (
	NoAtoms          = "No valid atoms found"
	SDFTooShort      = "Invalid SDF format: file too short"
	SDFBadCounts     = "Invalid SDF format: cannot read counts line"
	SDFTruncAtoms    = "Invalid SDF format: truncated atom block"
	SDFTruncBonds    = "Invalid SDF format: truncated bond block"
	UnknownFormat    = "Unknown structure file format"
	FileUnreadable   = "Unable to read file"
	CompressedBroken = "Unable to decompress file"
)

// FormatError is returned when the input doesn't meet the minimum structural
// requirements of its format. It is always fatal to the parse.
type FormatError struct {
	msg      string
	filename string //empty if the input didn't come from a file
	deco     []string
}

// NewFormatError returns a FormatError with the given message.
func NewFormatError(msg string) *FormatError {
	return &FormatError{msg: msg}
}

func (err *FormatError) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("%s: %s", err.filename, err.msg)
	}
	return err.msg
}

// Message returns the error message without the file name.
func (err *FormatError) Message() string { return err.msg }

// FileName returns the file that caused the error, or the empty string.
func (err *FormatError) FileName() string { return err.filename }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *FormatError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true for FormatErrors.
func (err *FormatError) Critical() bool { return true }

// Is allows errors.Is to match FormatErrors by message.
func (err *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.msg == err.msg
}

// RecordError describes one record (line) of a file that couldn't be read and
// was skipped. The parse carries on after a RecordError.
type RecordError struct {
	Line   int    //1-based line number in the input
	Record string //record name, e.g. ATOM, CONECT, or "atom"/"bond" for SDF blocks
	Err    error
	deco   []string
}

func (err *RecordError) Error() string {
	return fmt.Sprintf("line %d (%s): %s", err.Line, err.Record, err.Err)
}

// Unwrap returns the underlying cause.
func (err *RecordError) Unwrap() error { return err.Err }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *RecordError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always false for RecordErrors.
func (err *RecordError) Critical() bool { return false }

func recordErr(line int, record string, format string, args ...interface{}) *RecordError {
	return &RecordError{Line: line, Record: record, Err: fmt.Errorf(format, args...)}
}

// errDecorate adds the caller's name to err if err implements Error, and returns it.
// Other errors are returned unchanged. A nil error gives nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
