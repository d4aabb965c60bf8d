// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Matches e.g. <tiff:Orientation>6 and <exif:PixelXDimension>1024.
var xmpTagRe = regexp.MustCompile(`(?i)<(?:tiff|exif):([^>]+)>([^<]+)`)

// decodeXMPTags scrapes tiff: and exif: namespaced elements from an XMP packet.
//
// The iTXt chunk's sub fields (keyword, compression flag, language tag etc.)
// are not parsed; the whole payload is treated as one ISO-8859-1 string.
// This never fails; no matches gives an empty map.
func decodeXMPTags(data []byte) RawTags {
	tags := make(RawTags)
	s := latin1String(data)
	for _, m := range xmpTagRe.FindAllStringSubmatch(s, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		tags[name] = StringValue(strings.TrimSpace(m[2]))
	}
	return tags
}

func latin1String(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
