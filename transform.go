// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Rotation is a clockwise rotation in degrees.
type Rotation int

// The clockwise rotations used by Transform.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Op is a primitive display operation.
type Op int

// The primitive operations, as listed by Transform.Ops.
const (
	OpRotate90 Op = iota + 1
	OpRotate180
	OpRotate270
	OpMirrorHorizontal
)

func (o Op) String() string {
	switch o {
	case OpRotate90:
		return "rotate90"
	case OpRotate180:
		return "rotate180"
	case OpRotate270:
		return "rotate270"
	case OpMirrorHorizontal:
		return "mirror-horizontal"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Transform describes how to display an image with a given orientation:
// mirror horizontally (if set), then rotate clockwise.
type Transform struct {
	Rotation         Rotation
	MirrorHorizontal bool
}

// Identity is the transform for TopLeft.
var Identity = Transform{}

var orientationTransforms = [...]Transform{
	TopLeft:     {},
	TopRight:    {MirrorHorizontal: true},
	BottomRight: {Rotation: Rotate180},
	BottomLeft:  {Rotation: Rotate180, MirrorHorizontal: true},
	LeftTop:     {Rotation: Rotate270, MirrorHorizontal: true},
	RightTop:    {Rotation: Rotate90},
	RightBottom: {Rotation: Rotate90, MirrorHorizontal: true},
	LeftBottom:  {Rotation: Rotate270},
}

// TransformFor returns the transform for o.
// Codes outside [1,8] return Identity and an error wrapping ErrInvalidOrientation.
func TransformFor(o Orientation) (Transform, error) {
	if !o.IsValid() {
		return Identity, &InvalidOrientationError{Value: fmt.Sprint(int(o))}
	}
	return orientationTransforms[o], nil
}

// Transform returns the transform for o, Identity if o is not valid.
func (o Orientation) Transform() Transform {
	t, _ := TransformFor(o)
	return t
}

// IsIdentity reports whether t leaves the image unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Ops returns the 0 to 2 primitive operations in t, rotation first.
func (t Transform) Ops() []Op {
	var ops []Op
	switch t.Rotation {
	case Rotate90:
		ops = append(ops, OpRotate90)
	case Rotate180:
		ops = append(ops, OpRotate180)
	case Rotate270:
		ops = append(ops, OpRotate270)
	}
	if t.MirrorHorizontal {
		ops = append(ops, OpMirrorHorizontal)
	}
	return ops
}

func (t Transform) String() string {
	ops := t.Ops()
	if len(ops) == 0 {
		return "identity"
	}
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " + ")
}

// CSS returns t as a CSS transform value, e.g. "rotate(90deg) rotateY(180deg)".
// CSS applies the functions right to left, so the mirror is applied first.
func (t Transform) CSS() string {
	var parts []string
	if t.Rotation != Rotate0 {
		parts = append(parts, fmt.Sprintf("rotate(%ddeg)", t.Rotation))
	}
	if t.MirrorHorizontal {
		parts = append(parts, "rotateY(180deg)")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Dimensions returns the display width and height of an image
// with the stored width w and height h.
func (t Transform) Dimensions(w, h int) (int, int) {
	switch t.Rotation {
	case Rotate90, Rotate270:
		return h, w
	default:
		return w, h
	}
}

// Apply returns a copy of img with t applied.
func (t Transform) Apply(img image.Image) *image.NRGBA {
	if t.MirrorHorizontal {
		img = imaging.FlipH(img)
	}
	// imaging rotates counter-clockwise.
	switch t.Rotation {
	case Rotate90:
		return imaging.Rotate270(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate270:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}
