package imageorient

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDecodeXMPTags(t *testing.T) {
	c := qt.New(t)

	c.Run("Elements", func(c *qt.C) {
		tags := decodeXMPTags([]byte(XMPPacket(`
<tiff:Orientation>6</tiff:Orientation>
<tiff:XResolution> 72 </tiff:XResolution>
<exif:PixelXDimension>1024</exif:PixelXDimension>
<xmp:CreatorTool>Foo</xmp:CreatorTool>`)))
		c.Assert(tags, qt.DeepEquals, RawTags{
			"Orientation":     StringValue("6"),
			"XResolution":     StringValue("72"),
			"PixelXDimension": StringValue("1024"),
		})
	})

	c.Run("Case insensitive prefix", func(c *qt.C) {
		tags := decodeXMPTags([]byte("<TIFF:Orientation>8</TIFF:Orientation>"))
		c.Assert(tags["Orientation"], qt.Equals, TagValue(StringValue("8")))
	})

	c.Run("Attributes are not elements", func(c *qt.C) {
		tags := decodeXMPTags([]byte(`<rdf:Description tiff:Orientation="6"/>`))
		c.Assert(tags, qt.HasLen, 0)
	})

	c.Run("Latin-1", func(c *qt.C) {
		tags := decodeXMPTags([]byte("<tiff:Artist>Bj\xf8rn</tiff:Artist>"))
		c.Assert(tags["Artist"], qt.Equals, TagValue(StringValue("Bjørn")))
	})

	c.Run("Garbage", func(c *qt.C) {
		c.Assert(decodeXMPTags(nil), qt.HasLen, 0)
		c.Assert(decodeXMPTags([]byte{0, 1, 2, '<', 't'}), qt.HasLen, 0)
	})
}

func TestMetaDecoderEXIF(t *testing.T) {
	c := qt.New(t)

	decode := func(c *qt.C, b []byte) (RawTags, []string, error) {
		var warnings []string
		tags, err := NewEXIFDecoder().DecodeEXIF(bytes.NewReader(b), func(format string, args ...any) {
			warnings = append(warnings, format)
		})
		return tags, warnings, err
	}

	c.Run("TIFF", func(c *qt.C) {
		tags, warnings, err := decode(c, NewTestTIFF(
			ShortEntry(0x0112, 6),
			RationalEntry(0x011a, 300, 1),
			RationalEntry(0x011b, 1, 200),
			ASCIIEntry(0x010f, "Canon"),
		))
		c.Assert(err, qt.IsNil)
		c.Assert(warnings, qt.HasLen, 0)
		c.Assert(tags, qt.DeepEquals, RawTags{
			"Orientation": NumberValue(6),
			"XResolution": RationalValue{Num: 300, Den: 1},
			"YResolution": RationalValue{Num: 1, Den: 200},
			"Make":        StringValue("Canon"),
		})
	})

	c.Run("JPEG", func(c *qt.C) {
		tags, _, err := decode(c, NewTestJPEG(NewTestTIFF(ShortEntry(0x0112, 3))))
		c.Assert(err, qt.IsNil)
		c.Assert(tags["Orientation"], qt.Equals, TagValue(NumberValue(3)))
	})

	c.Run("Multiple values", func(c *qt.C) {
		// BitsPerSample.
		tags, _, err := decode(c, NewTestTIFF(ShortEntry(0x0102, 8, 8, 8)))
		c.Assert(err, qt.IsNil)
		c.Assert(tags["BitsPerSample"], qt.Equals, TagValue(StringValue("8 8 8")))
	})

	c.Run("No EXIF", func(c *qt.C) {
		tags, _, err := decode(c, NewTestJPEG(nil))
		c.Assert(err, qt.IsNil)
		c.Assert(tags, qt.HasLen, 0)
	})

	c.Run("Empty", func(c *qt.C) {
		tags, warnings, err := decode(c, nil)
		c.Assert(err, qt.IsNil)
		c.Assert(tags, qt.HasLen, 0)
		c.Assert(warnings, qt.HasLen, 0)
	})

	c.Run("Broken TIFF", func(c *qt.C) {
		_, _, err := decode(c, []byte("II*\x00\xff\xff\xff\xff"))
		c.Assert(IsInvalidFormat(err), qt.IsTrue)
	})
}
