package imageorient

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// Exported helpers for the tests in imageorient_test.

// TIFF field types.
const (
	TypeASCII    = 2
	TypeShort    = 3
	TypeLong     = 4
	TypeRational = 5
)

// IFDEntry is one field in a test IFD0.
type IFDEntry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	// Data is the value encoded in little-endian byte order.
	Data []byte
}

// ShortEntry returns a SHORT field with the given values.
func ShortEntry(tag uint16, vals ...uint16) IFDEntry {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return IFDEntry{Tag: tag, Type: TypeShort, Count: uint32(len(vals)), Data: b}
}

// RationalEntry returns a RATIONAL field with one value.
func RationalEntry(tag uint16, num, den uint32) IFDEntry {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, num)
	binary.LittleEndian.PutUint32(b[4:], den)
	return IFDEntry{Tag: tag, Type: TypeRational, Count: 1, Data: b}
}

// ASCIIEntry returns a null terminated ASCII field.
func ASCIIEntry(tag uint16, s string) IFDEntry {
	b := append([]byte(s), 0)
	return IFDEntry{Tag: tag, Type: TypeASCII, Count: uint32(len(b)), Data: b}
}

// NewTestTIFF returns a little-endian TIFF header followed by a single IFD with entries.
// This is the payload of a PNG eXIf chunk.
func NewTestTIFF(entries ...IFDEntry) []byte {
	const headerLen = 8
	ifdLen := 2 + 12*len(entries) + 4
	dataOffset := headerLen + ifdLen

	var ifd, data bytes.Buffer
	le := binary.LittleEndian

	ifd.Write(le.AppendUint16(nil, uint16(len(entries))))
	for _, e := range entries {
		ifd.Write(le.AppendUint16(nil, e.Tag))
		ifd.Write(le.AppendUint16(nil, e.Type))
		ifd.Write(le.AppendUint32(nil, e.Count))
		if len(e.Data) <= 4 {
			v := make([]byte, 4)
			copy(v, e.Data)
			ifd.Write(v)
			continue
		}
		ifd.Write(le.AppendUint32(nil, uint32(dataOffset+data.Len())))
		data.Write(e.Data)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}
	ifd.Write([]byte{0, 0, 0, 0}) // No IFD1.

	var b bytes.Buffer
	b.WriteString("II")
	b.Write(le.AppendUint16(nil, 42))
	b.Write(le.AppendUint32(nil, headerLen))
	b.Write(ifd.Bytes())
	b.Write(data.Bytes())
	return b.Bytes()
}

// NewTestJPEG returns a minimal JPEG with tiff stored in an APP1 EXIF segment.
// If tiff is nil, no APP1 segment is written.
func NewTestJPEG(tiff []byte) []byte {
	b := []byte{0xff, 0xd8}
	if tiff != nil {
		payload := append([]byte("Exif\x00\x00"), tiff...)
		length := len(payload) + 2
		b = append(b, 0xff, 0xe1, byte(length>>8), byte(length))
		b = append(b, payload...)
	}
	return append(b, 0xff, 0xd9)
}

// NewTestPNG returns a PNG signature followed by chunks.
// A correct CRC is written, though the decoder never checks it.
func NewTestPNG(chunks ...Chunk) []byte {
	var b bytes.Buffer
	b.Write(pngSignature)
	for _, c := range chunks {
		b.Write(binary.BigEndian.AppendUint32(nil, uint32(len(c.Data))))
		b.WriteString(c.Name)
		b.Write(c.Data)
		crc := crc32.NewIEEE()
		crc.Write([]byte(c.Name))
		crc.Write(c.Data)
		b.Write(binary.BigEndian.AppendUint32(nil, crc.Sum32()))
	}
	return b.Bytes()
}

// PHYsChunk returns a pHYs chunk.
func PHYsChunk(x, y uint32, unit byte) Chunk {
	b := binary.BigEndian.AppendUint32(nil, x)
	b = binary.BigEndian.AppendUint32(b, y)
	return Chunk{Name: pngChunkPHYs, Data: append(b, unit)}
}

// ITXtChunk returns an iTXt chunk with the XMP keyword and an uncompressed packet.
func ITXtChunk(xmp string) Chunk {
	return Chunk{Name: pngChunkITXt, Data: []byte("XML:com.adobe.xmp\x00\x00\x00\x00\x00" + xmp)}
}

// IHDRChunk returns an IHDR chunk for a w x h 8 bit RGB image.
func IHDRChunk(w, h uint32) Chunk {
	b := binary.BigEndian.AppendUint32(nil, w)
	b = binary.BigEndian.AppendUint32(b, h)
	return Chunk{Name: "IHDR", Data: append(b, 8, 2, 0, 0, 0)}
}

// IENDChunk returns the IEND chunk.
func IENDChunk() Chunk {
	return Chunk{Name: pngChunkIEND}
}

// XMPPacket wraps body in a minimal XMP packet.
func XMPPacket(body string) string {
	return `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` +
		`<rdf:Description rdf:about="" xmlns:tiff="http://ns.adobe.com/tiff/1.0/" xmlns:exif="http://ns.adobe.com/exif/1.0/">` +
		body +
		`</rdf:Description></rdf:RDF></x:xmpmeta>`
}
