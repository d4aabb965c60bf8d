package imageorient

import (
	"bytes"
	"encoding/binary"
)

const (
	markerSOI  = 0xffd8
	markerEOI  = 0xffd9
	markerSOS  = 0xffda
	markerAPP1 = 0xffe1
	markerTEM  = 0xff01
	markerRST0 = 0xffd0
	markerRST7 = 0xffd7
)

var exifHeader = []byte("Exif\x00\x00")

type imageDecoderJPEG struct {
	*baseDecoder
}

// decode walks the JPEG segments up to the start of scan and decodes
// the first APP1 segment with an EXIF header.
// Other APP1 segments, typically XMP, are skipped.
func (e *imageDecoderJPEG) decode() (RawTags, error) {
	r := newStreamReader(e.buf, binary.BigEndian)

	soi, err := r.read2E()
	if err != nil || soi != markerSOI {
		return nil, newInvalidFormatErrorf("missing JPEG SOI marker")
	}

	for {
		pos := r.pos()
		b, err := r.read1E()
		if err != nil {
			// No EXIF before the end of the data.
			return RawTags{}, nil
		}

		// All JPEG markers begin with 0xff.
		if b != 0xff {
			return nil, newInvalidFormatErrorf("invalid JPEG marker prefix 0x%02x at %d", b, pos)
		}
		// Any number of 0xff fill bytes may precede the marker code.
		for b == 0xff {
			if b, err = r.read1E(); err != nil {
				return RawTags{}, nil
			}
		}
		if b == 0 {
			return nil, newInvalidFormatErrorf("invalid JPEG marker 0xff00 at %d", pos)
		}
		marker := 0xff00 | uint16(b)

		switch {
		case marker == markerSOS || marker == markerEOI:
			return RawTags{}, nil
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			// No length.
			continue
		}

		length, err := r.read2E()
		if err != nil || length < 2 || int64(length-2) > r.remaining() {
			return nil, newInvalidFormatErrorf("truncated JPEG segment 0x%04x at %d", marker, pos)
		}

		if marker != markerAPP1 {
			if err := r.skip(int64(length - 2)); err != nil {
				return nil, newInvalidFormatError(err)
			}
			continue
		}

		data, err := r.readBytesE(int(length - 2))
		if err != nil {
			return nil, newInvalidFormatError(err)
		}
		if bytes.HasPrefix(data, exifHeader) {
			return e.decodeEXIF(data[len(exifHeader):])
		}
	}
}
