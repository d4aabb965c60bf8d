// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"fmt"
	"maps"
	"strconv"
)

const (
	tagOrientation   = "Orientation"
	tagXResolution   = "XResolution"
	tagYResolution   = "YResolution"
	tagPixelPerUnitX = "PixelPerUnitX"
	tagPixelPerUnitY = "PixelPerUnitY"
)

// TagValue is a raw tag value as produced by one of the metadata sources.
// It is one of StringValue, NumberValue or RationalValue.
type TagValue interface {
	isTagValue()
}

// StringValue is a textual tag value.
type StringValue string

// NumberValue is a numeric tag value.
type NumberValue float64

// RationalValue is a rational tag value, e.g. EXIF XResolution.
type RationalValue struct {
	Num int64
	Den int64
}

func (StringValue) isTagValue()   {}
func (NumberValue) isTagValue()   {}
func (RationalValue) isTagValue() {}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r RationalValue) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (n NumberValue) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// RawTags maps tag names to their raw values.
type RawTags map[string]TagValue

// merge copies all tags in other into t, overwriting existing keys.
func (t RawTags) merge(other RawTags) {
	maps.Copy(t, other)
}

// TagMap maps tag names to normalized string values.
type TagMap map[string]string

// Normalize converts raw into a TagMap where every value is a string.
//
// For XResolution and YResolution only the numerator of a rational is kept;
// the denominator is dropped, not divided.
func Normalize(raw RawTags) TagMap {
	m := make(TagMap, len(raw))
	for k, v := range raw {
		m[k] = normalizeValue(k, v)
	}
	return m
}

func normalizeValue(name string, v TagValue) string {
	switch vv := v.(type) {
	case StringValue:
		return string(vv)
	case NumberValue:
		return vv.String()
	case RationalValue:
		if name == tagXResolution || name == tagYResolution {
			return strconv.FormatInt(vv.Num, 10)
		}
		return vv.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
