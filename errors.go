// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrInvalidFormat is returned when the image data could not be parsed,
	// e.g. a missing PNG signature or a chunk that overruns the buffer.
	ErrInvalidFormat = errors.New("imageorient: invalid format")

	// ErrInvalidOrientation is returned when an orientation value is neither
	// an integer in [1,8] nor one of the named EXIF orientations.
	ErrInvalidOrientation = errors.New("imageorient: invalid orientation")

	// ErrUnsupportedFormat is returned for MIME types other than image/jpeg and image/png.
	ErrUnsupportedFormat = errors.New("imageorient: unsupported image format")

	// ErrTimeout is returned when Options.Timeout expires before decoding is done.
	ErrTimeout = errors.New("imageorient: timed out")
)

// IsInvalidFormat reports whether err is (or wraps) ErrInvalidFormat.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// InvalidFormatError wraps a parse failure.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidFormat, e.Err)
}

// Is reports whether target is ErrInvalidFormat.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

func newInvalidFormatError(err error) error {
	if err == nil || IsInvalidFormat(err) {
		return err
	}
	return &InvalidFormatError{Err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return newInvalidFormatError(fmt.Errorf(format, args...))
}

// isInvalidFormatErrorCandidate reports whether err is a low level
// read error that in a fully buffered decode means the data is malformed.
func isInvalidFormatErrorCandidate(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, errShortRead)
}

// ReadError is returned when the source bytes could not be obtained.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "imageorient: read failed: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// InvalidOrientationError describes an orientation tag value that could not be resolved.
type InvalidOrientationError struct {
	Value string
}

func (e *InvalidOrientationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOrientation, strconv.Quote(e.Value))
}

// Is reports whether target is ErrInvalidOrientation.
func (e *InvalidOrientationError) Is(target error) bool {
	return target == ErrInvalidOrientation
}
