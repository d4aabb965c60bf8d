package imageorient

import (
	"bytes"
	"encoding/binary"
	"iter"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const (
	pngChunkIEND = "IEND"
	pngChunkPHYs = "pHYs"
	pngChunkITXt = "iTXt"
	pngChunkEXIf = "eXIf"

	pngUnitMeter = 1
)

// Chunk is a PNG chunk.
type Chunk struct {
	// Name is the 4 character chunk type, e.g. "pHYs".
	Name string
	Data []byte
}

// pngChunks walks the chunks in buf in file order.
//
// Each chunk is a 4 byte big-endian length, a 4 byte type, length bytes of data and a 4 byte CRC.
// The CRC is read but not verified. Walking stops at IEND; any trailing bytes are ignored.
// A missing signature or a chunk that would read past the end of buf yields an invalid format error.
func pngChunks(buf []byte) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		if !bytes.HasPrefix(buf, pngSignature) {
			yield(Chunk{}, newInvalidFormatErrorf("missing PNG signature"))
			return
		}

		e := newStreamReader(buf, binary.BigEndian)
		if err := e.skip(int64(len(pngSignature))); err != nil {
			yield(Chunk{}, newInvalidFormatError(err))
			return
		}

		for e.remaining() > 0 {
			chunk, err := e.readPNGChunk()
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
			if chunk.Name == pngChunkIEND {
				return
			}
		}
	}
}

func (e *streamReader) readPNGChunk() (Chunk, error) {
	pos := e.pos()
	length, err := e.read4E()
	if err != nil {
		return Chunk{}, newInvalidFormatErrorf("truncated chunk header at %d", pos)
	}
	typ, err := e.readBytesVolatileE(4)
	if err != nil {
		return Chunk{}, newInvalidFormatErrorf("truncated chunk header at %d", pos)
	}
	name := string(typ)

	// The data and the CRC must both fit.
	if int64(length) > e.remaining()-4 {
		return Chunk{}, newInvalidFormatErrorf("chunk %q at %d: length %d exceeds remaining %d bytes", name, pos, length, e.remaining())
	}
	data, err := e.readBytesE(int(length))
	if err != nil {
		return Chunk{}, newInvalidFormatError(err)
	}
	if err := e.skip(4); err != nil { // CRC
		return Chunk{}, newInvalidFormatError(err)
	}

	return Chunk{Name: name, Data: data}, nil
}

// PhysicalUnits is the pixel density from a PNG pHYs chunk, in pixels per meter.
type PhysicalUnits struct {
	PixelPerUnitX uint32
	PixelPerUnitY uint32
}

// decodePhysicalUnits decodes a pHYs chunk:
//
//	Pixels per unit, X axis: 4 bytes (unsigned integer)
//	Pixels per unit, Y axis: 4 bytes (unsigned integer)
//	Unit specifier:          1 byte  (0: unit is unknown 1: unit is the meter)
//
// Only densities in meters are reported.
func decodePhysicalUnits(data []byte) (PhysicalUnits, bool) {
	if len(data) < 9 || data[8] != pngUnitMeter {
		return PhysicalUnits{}, false
	}
	return PhysicalUnits{
		PixelPerUnitX: binary.BigEndian.Uint32(data[0:4]),
		PixelPerUnitY: binary.BigEndian.Uint32(data[4:8]),
	}, true
}

func (p PhysicalUnits) tags() RawTags {
	return RawTags{
		tagPixelPerUnitX: NumberValue(p.PixelPerUnitX),
		tagPixelPerUnitY: NumberValue(p.PixelPerUnitY),
	}
}

type imageDecoderPNG struct {
	*baseDecoder
}

func (e *imageDecoderPNG) decode() (RawTags, error) {
	// The order of the ancillary chunks is not guaranteed,
	// so collect them all and merge in a fixed order at the end.
	var (
		exifTags = make(RawTags)
		xmpTags  = make(RawTags)
		phys     RawTags
	)

	for chunk, err := range pngChunks(e.buf) {
		if err != nil {
			return nil, err
		}
		switch chunk.Name {
		case pngChunkITXt:
			// The last iTXt chunk replaces any earlier ones.
			xmpTags = decodeXMPTags(chunk.Data)
		case pngChunkPHYs:
			if p, ok := decodePhysicalUnits(chunk.Data); ok {
				phys = p.tags()
			}
		case pngChunkEXIf:
			// http://ftp-osl.osuosl.org/pub/libpng/documents/pngext-1.5.0.html#C.eXIf
			// The data segment of the eXIf chunk contains an Exif profile without the JPEG APP1 marker,
			// length, and the "Exif" ID code, i.e. it starts with the TIFF header.
			tags, err := e.decodeEXIF(chunk.Data)
			if err != nil {
				e.opts.Warnf("PNG: skipping eXIf chunk: %v", err)
				continue
			}
			exifTags.merge(tags)
		}
	}

	tags := make(RawTags)
	tags.merge(exifTags)
	tags.merge(xmpTags)
	tags.merge(phys)

	return tags, nil
}
