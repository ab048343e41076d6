package fontquery

import (
	"fmt"
	"iter"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
type nameKey struct {
	Platform uint16
	Encoding uint16
	Name     sfnt.NameID
}

const (
	platformUnicode = 0
	platformWindows = 3
	encodingUnicode = 3 // Unicode BMP for platform 0
	encodingWinBMP  = 1 // Unicode BMP for platform 3
)

// nameKeys maps the name IDs we report to keys of [Font.Names].
var nameKeys = map[sfnt.NameID]string{
	sfnt.NameIDFamily:     "family",
	sfnt.NameIDSubfamily:  "subfamily",
	sfnt.NameIDFull:       "full",
	sfnt.NameIDVersion:    "version",
	sfnt.NameIDPostScript: "postscript",
}

// namesRange yields decoded `(nameID, value)` pairs from the raw bytes of table
// 'name'. Only Unicode BMP and Windows BMP encodings are yielded, malformed or
// out-of-bounds records are skipped.
func namesRange(b []byte) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		if !nameTableSafe(b) {
			return
		}
		count := int(u16(b[2:4]))
		storage := int(u16(b[4:6]))
		for i := range count {
			rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: u16(rec[0:2]),
				Encoding: u16(rec[2:4]),
				Name:     sfnt.NameID(u16(rec[6:8])),
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			start := storage + int(u16(rec[10:12]))
			end := start + int(u16(rec[8:10]))
			if end > len(b) {
				continue
			}
			value, err := decodeNameUTF16(b[start:end])
			if err != nil || value == "" {
				continue
			}
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

func nameTableSafe(b []byte) bool {
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return false
	}
	count := int(u16(b[2:4]))
	if storage := int(u16(b[4:6])); storage > len(b) {
		tracer().Debugf("name table invalid string offset: %d", storage)
		return false
	}
	if nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return false
	}
	return true
}

func isSupportedNameEncoding(key nameKey) bool {
	return (key.Platform == platformUnicode && key.Encoding == encodingUnicode) ||
		(key.Platform == platformWindows && key.Encoding == encodingWinBMP)
}

func decodeNameUTF16(str []byte) (string, error) {
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := dec.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

// decodeNames collects the first decodable value of each reported name ID.
func decodeNames(b []byte) map[string]string {
	names := make(map[string]string)
	for id, value := range namesRange(b) {
		key, ok := nameKeys[id]
		if !ok {
			continue
		}
		if _, seen := names[key]; !seen {
			names[key] = value
		}
	}
	return names
}
