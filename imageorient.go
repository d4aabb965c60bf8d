// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package imageorient reads the orientation of JPEG and PNG images from their embedded
// metadata (EXIF in JPEG; XMP, pHYs and eXIf chunks in PNG) and maps it to a display transform.
package imageorient

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"
)

const (
	// ImageFormatUnknown is any format other than JPEG and PNG.
	ImageFormatUnknown ImageFormat = iota
	// JPEG is the JPEG image format.
	JPEG
	// PNG is the PNG image format.
	PNG
)

const (
	mimeTypeJPEG = "image/jpeg"
	mimeTypePNG  = "image/png"
)

// ImageFormat is the image format.
//
//go:generate stringer -type=ImageFormat
type ImageFormat int

// FormatFromMIME returns the ImageFormat for the given MIME type.
// Parameters and case are ignored. Anything but image/jpeg and image/png is ImageFormatUnknown.
func FormatFromMIME(mimeType string) ImageFormat {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	switch mediaType {
	case mimeTypeJPEG:
		return JPEG
	case mimeTypePNG:
		return PNG
	default:
		return ImageFormatUnknown
	}
}

// Options contains the options for New.
type Options struct {
	// EXIFDecoder is used to decode EXIF in JPEG images and in PNG eXIf chunks.
	// If not set, a decoder backed by github.com/rwcarlsen/goexif is used.
	EXIFDecoder EXIFDecoder

	// Warnf will be called for each warning.
	Warnf func(string, ...any)

	// Timeout is the maximum time the decoder will spend on one image.
	// If set to 0, the decoder will not time out.
	Timeout time.Duration

	// LimitBufSize is the maximum size in bytes of an image to read.
	// Default value is 100 MB.
	LimitBufSize int64
}

// DecodeResult contains the result of a Decode operation.
type DecodeResult struct {
	// Format is the format that was decoded.
	Format ImageFormat

	// Tags holds the normalized tags found in the image.
	Tags TagMap

	// Orientation is the resolved orientation.
	// This is DefaultOrientation if Resolved is false.
	Orientation Orientation

	// Resolved is true when Orientation comes from a valid orientation tag
	// and false when it was defaulted.
	Resolved bool
}

// Transform returns the display transform for the result's orientation.
func (r DecodeResult) Transform() Transform {
	return r.Orientation.Transform()
}

// Decoder reads image orientation metadata.
// A Decoder is safe for concurrent use.
type Decoder struct {
	opts Options
}

// New creates a new Decoder with the given options.
func New(opts Options) *Decoder {
	if opts.EXIFDecoder == nil {
		opts.EXIFDecoder = NewEXIFDecoder()
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.LimitBufSize <= 0 {
		opts.LimitBufSize = defaultLimitBufSize
	}
	return &Decoder{opts: opts}
}

// ReadOrientation reads the orientation of the image in r with the declared mimeType
// using a Decoder with default options. See Decoder.Orientation.
func ReadOrientation(r io.Reader, mimeType string) Orientation {
	return New(Options{}).Orientation(r, mimeType)
}

// Orientation reads the orientation of the image in r with the declared mimeType.
// It never fails: any error, and any unsupported mimeType, gives DefaultOrientation.
func (d *Decoder) Orientation(r io.Reader, mimeType string) Orientation {
	res, err := d.Decode(r, mimeType)
	if err != nil {
		d.opts.Warnf("orientation: %v", err)
		return DefaultOrientation
	}
	return res.Orientation
}

// Decode reads the metadata of the image in r with the declared mimeType
// and resolves its orientation.
//
// Unsupported MIME types return ErrUnsupportedFormat without reading from r.
// Read failures return a *ReadError, malformed images an error for which IsInvalidFormat is true.
// On error the result still carries DefaultOrientation.
func (d *Decoder) Decode(r io.Reader, mimeType string) (result DecodeResult, err error) {
	result.Orientation = DefaultOrientation
	result.Format = FormatFromMIME(mimeType)

	if result.Format == ImageFormatUnknown {
		return result, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mimeType)
	}

	decode := func() (res DecodeResult, err error) {
		defer func() {
			if err2 := errFromRecover(recover()); err2 != nil {
				res, err = result, err2
			}
		}()
		return d.decode(r, result)
	}

	if d.opts.Timeout <= 0 {
		return decode()
	}

	type decodeReturn struct {
		res DecodeResult
		err error
	}
	c := make(chan decodeReturn, 1)
	go func() {
		res, err := decode()
		c <- decodeReturn{res, err}
	}()

	select {
	case <-time.After(d.opts.Timeout):
		return result, fmt.Errorf("%w after %s", ErrTimeout, d.opts.Timeout)
	case ret := <-c:
		return ret.res, ret.err
	}
}

func (d *Decoder) decode(r io.Reader, result DecodeResult) (DecodeResult, error) {
	buf, err := readAll(r, d.opts.LimitBufSize)
	if err != nil {
		return result, err
	}

	base := &baseDecoder{
		buf:  buf,
		opts: d.opts,
	}

	var dec decoder
	switch result.Format {
	case JPEG:
		dec = &imageDecoderJPEG{baseDecoder: base}
	case PNG:
		dec = &imageDecoderPNG{baseDecoder: base}
	}

	raw, err := dec.decode()
	if err != nil {
		return result, err
	}

	result.Tags = Normalize(raw)
	result.Orientation, result.Resolved = ResolveOrientation(result.Tags)
	if !result.Resolved {
		if v, found := result.Tags[tagOrientation]; found {
			d.opts.Warnf("orientation: ignoring invalid value %q", v)
		}
	}

	return result, nil
}

type decoder interface {
	decode() (RawTags, error)
}

// baseDecoder holds what's shared between the image decoders for one decode call.
type baseDecoder struct {
	buf  []byte
	opts Options
}

// decodeEXIF runs the configured EXIFDecoder on b, turning any panic into an error.
func (e *baseDecoder) decodeEXIF(b []byte) (tags RawTags, err error) {
	defer func() {
		if err2 := errFromRecover(recover()); err2 != nil {
			tags, err = nil, newInvalidFormatError(err2)
		}
	}()
	return e.opts.EXIFDecoder.DecodeEXIF(bytes.NewReader(b), e.opts.Warnf)
}
