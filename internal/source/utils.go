package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// normalizeNFC composes identifiers and string literals so that visually equal
// sources produce equal bytes (and equal cache digests).
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/16+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// lineStart returns the byte offset of the first byte of the line containing off
// together with the 0-based line index.
func lineStart(lineIdx []uint32, off uint32) (start uint32, line int) {
	// бинпоиск: наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return 0, 0
	}
	return lineIdx[hi] + 1, hi + 1
}

func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	start, line := lineStart(lineIdx, off)
	if int(off) > len(content) {
		off = uint32(len(content))
	}
	col := utf8.RuneCount(content[start:off]) + 1
	return LineCol{Line: uint32(line + 1), Col: uint32(col)}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
