// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"strconv"
	"strings"
)

// Orientation is the EXIF orientation code, 1 to 8.
// See http://sylvana.net/jpegcrop/exif_orientation.html
type Orientation int

const (
	// TopLeft is the normal orientation, no transform needed.
	TopLeft Orientation = iota + 1
	// TopRight is mirrored horizontally.
	TopRight
	// BottomRight is rotated 180°.
	BottomRight
	// BottomLeft is mirrored vertically.
	BottomLeft
	// LeftTop is transposed.
	LeftTop
	// RightTop needs a 90° clockwise rotation.
	RightTop
	// RightBottom is transversed.
	RightBottom
	// LeftBottom needs a 270° clockwise rotation.
	LeftBottom
)

// DefaultOrientation is used when no orientation could be determined.
const DefaultOrientation = TopLeft

var orientationNames = [...]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomRight: "bottom-right",
	BottomLeft:  "bottom-left",
	LeftTop:     "left-top",
	RightTop:    "right-top",
	RightBottom: "right-bottom",
	LeftBottom:  "left-bottom",
}

var orientationByName = func() map[string]Orientation {
	m := make(map[string]Orientation, len(orientationNames))
	for i, name := range orientationNames {
		if name != "" {
			m[name] = Orientation(i)
		}
	}
	return m
}()

// IsValid reports whether o is one of the 8 EXIF orientations.
func (o Orientation) IsValid() bool {
	return o >= TopLeft && o <= LeftBottom
}

// String returns the EXIF name of o, e.g. "right-top".
func (o Orientation) String() string {
	if !o.IsValid() {
		return "Orientation(" + strconv.Itoa(int(o)) + ")"
	}
	return orientationNames[o]
}

// ParseOrientation parses s as either a base-10 orientation code
// or a named orientation such as "top-left".
// Values that are neither, and codes outside [1,8], return an *InvalidOrientationError.
func ParseOrientation(s string) (Orientation, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		o := Orientation(i)
		if !o.IsValid() {
			return DefaultOrientation, &InvalidOrientationError{Value: s}
		}
		return o, nil
	}
	if o, found := orientationByName[strings.ToLower(s)]; found {
		return o, nil
	}
	return DefaultOrientation, &InvalidOrientationError{Value: s}
}

// ResolveOrientation determines the orientation from the Orientation tag in tags.
// It never fails: a nil map, a missing tag or a value ParseOrientation rejects
// all resolve to DefaultOrientation with found set to false.
func ResolveOrientation(tags TagMap) (o Orientation, found bool) {
	v := tags[tagOrientation]
	if v == "" {
		return DefaultOrientation, false
	}
	o, err := ParseOrientation(v)
	if err != nil {
		return DefaultOrientation, false
	}
	return o, true
}
