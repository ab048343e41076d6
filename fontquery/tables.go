package fontquery

import (
	"github.com/npillmayer/fontfit/metrics"
	"golang.org/x/image/font/sfnt"
)

// HeadTableInfo is a typed view over the fields of OpenType table 'head'
// which are of interest for metrics.
type HeadTableInfo struct {
	MajorVersion uint16
	MinorVersion uint16
	MagicNumber  uint32
	Flags        uint16
	UnitsPerEm   uint16
	XMin         int16
	YMin         int16
	XMax         int16
	YMax         int16
	MacStyle     uint16
}

const (
	headTableSize = 54
	headMagic     = 0x5F0F3CF5
	hheaTableSize = 36
	os2TypoEnd    = 74 // end of sTypoLineGap
	os2V2Size     = 96
)

// DecodeHead decodes table 'head' from raw bytes.
// Returns (info, false) if the table is too short.
func DecodeHead(b []byte) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = u16(b[0:2])
	info.MinorVersion = u16(b[2:4])
	info.MagicNumber = u32(b[12:16])
	info.Flags = u16(b[16:18])
	info.UnitsPerEm = u16(b[18:20])
	info.XMin = i16(b[36:38])
	info.YMin = i16(b[38:40])
	info.XMax = i16(b[40:42])
	info.YMax = i16(b[42:44])
	info.MacStyle = u16(b[44:46])
	return info, true
}

// DecodeHHea decodes the vertical metrics of table 'hhea' from raw bytes.
// Returns false if the table is too short.
func DecodeHHea(b []byte) (metrics.HHeaMetrics, bool) {
	var hhea metrics.HHeaMetrics
	if len(b) < hheaTableSize {
		return hhea, false
	}
	hhea.Ascender = sfnt.Units(i16(b[4:6]))
	hhea.Descender = sfnt.Units(i16(b[6:8]))
	hhea.LineGap = sfnt.Units(i16(b[8:10]))
	return hhea, true
}

// DecodeOS2 decodes the line metrics of table 'OS/2' from raw bytes.
//
// Very old fonts carry a truncated version 0 table without typographic
// metrics; for these the typo fields remain 0, which makes them invalid for
// metric resolution. x-height and cap-height are decoded for table versions 2
// and up only. Returns false if the table is too short to hold even the
// version number and average character width.
func DecodeOS2(b []byte) (metrics.OS2Metrics, bool) {
	var os2 metrics.OS2Metrics
	if len(b) < 4 {
		return os2, false
	}
	os2.Version = u16(b[0:2])
	os2.AvgCharWidth = sfnt.Units(i16(b[2:4]))
	if len(b) >= os2TypoEnd {
		os2.UseTypoMetrics = u16(b[62:64])&(1<<7) != 0
		os2.TypoAscender = sfnt.Units(i16(b[68:70]))
		os2.TypoDescender = sfnt.Units(i16(b[70:72]))
		os2.TypoLineGap = sfnt.Units(i16(b[72:74]))
	}
	if os2.Version >= 2 && len(b) >= os2V2Size {
		os2.XHeight = sfnt.Units(i16(b[86:88]))
		os2.CapHeight = sfnt.Units(i16(b[88:90]))
	}
	return os2, true
}
