// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// EXIFDecoder decodes EXIF tags.
//
// r holds the TIFF structure of the EXIF profile, starting with the byte order mark,
// as found after the "Exif\x00\x00" header of a JPEG APP1 segment and in a PNG eXIf chunk.
// Implementations must return an empty map and no error when r is empty.
type EXIFDecoder interface {
	DecodeEXIF(r io.Reader, warnf func(string, ...any)) (RawTags, error)
}

// EXIFDecoderFunc is an adapter to allow the use of ordinary functions as EXIFDecoder.
type EXIFDecoderFunc func(r io.Reader, warnf func(string, ...any)) (RawTags, error)

// DecodeEXIF calls f(r, warnf).
func (f EXIFDecoderFunc) DecodeEXIF(r io.Reader, warnf func(string, ...any)) (RawTags, error) {
	return f(r, warnf)
}

// NewEXIFDecoder returns the default EXIFDecoder, backed by github.com/rwcarlsen/goexif.
// It also accepts a complete JPEG stream.
func NewEXIFDecoder() EXIFDecoder {
	return metaDecoderEXIF{}
}

type metaDecoderEXIF struct{}

func (metaDecoderEXIF) DecodeEXIF(r io.Reader, warnf func(string, ...any)) (RawTags, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return RawTags{}, nil
		}
		return nil, err
	}

	x, err := exif.Decode(br)
	if x == nil {
		if err == nil || isNoEXIFError(err) {
			return RawTags{}, nil
		}
		return nil, newInvalidFormatError(fmt.Errorf("decoding EXIF: %w", err))
	}
	if err != nil {
		if exif.IsCriticalError(err) {
			return nil, newInvalidFormatError(fmt.Errorf("decoding EXIF: %w", err))
		}
		// Some sub IFD failed to load, keep what we got.
		warnf("EXIF: %v", err)
	}

	w := &exifWalker{tags: make(RawTags), warnf: warnf}
	if err := x.Walk(w); err != nil {
		return nil, err
	}
	return w.tags, nil
}

// isNoEXIFError reports whether err from exif.Decode means there is simply no EXIF data,
// i.e. a JPEG stream without an APP1 segment.
func isNoEXIFError(err error) bool {
	return errors.Is(err, io.EOF)
}

type exifWalker struct {
	tags  RawTags
	warnf func(string, ...any)
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	v, err := exifTagValue(tag)
	if err != nil {
		w.warnf("EXIF: skipping tag %s: %v", name, err)
		return nil
	}
	w.tags[string(name)] = v
	return nil
}

// exifTagValue converts tag into a TagValue.
// Single values keep their type, multiple values are joined by a space.
func exifTagValue(tag *tiff.Tag) (TagValue, error) {
	count := int(tag.Count)

	switch tag.Format() {
	case tiff.IntVal:
		if count == 1 {
			i, err := tag.Int64(0)
			if err != nil {
				return nil, err
			}
			return NumberValue(i), nil
		}
		return joinValues(count, func(i int) (string, error) {
			v, err := tag.Int64(i)
			return strconv.FormatInt(v, 10), err
		})
	case tiff.RatVal:
		if count == 1 {
			num, den, err := tag.Rat2(0)
			if err != nil {
				return nil, err
			}
			return RationalValue{Num: num, Den: den}, nil
		}
		return joinValues(count, func(i int) (string, error) {
			num, den, err := tag.Rat2(i)
			return RationalValue{Num: num, Den: den}.String(), err
		})
	case tiff.FloatVal:
		if count == 1 {
			f, err := tag.Float(0)
			if err != nil {
				return nil, err
			}
			return NumberValue(f), nil
		}
		return joinValues(count, func(i int) (string, error) {
			f, err := tag.Float(i)
			return NumberValue(f).String(), err
		})
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil, err
		}
		return StringValue(printableString(s)), nil
	default:
		return StringValue(printableString(string(trimBytesNulls(tag.Val)))), nil
	}
}

func joinValues(count int, format func(i int) (string, error)) (TagValue, error) {
	var sb strings.Builder
	for i := range count {
		s, err := format(i)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(s)
	}
	return StringValue(sb.String()), nil
}
