package util

import (
	"fmt"
	"strings"
)

// DumpByteSlice dumps a byte slice in hex and ASCII, like xxd.
// Each row starts with the position of its first byte, offset by baseOffset so that a
// cluster can be shown at its position on disk. Every 8 bytes get an extra space to make
// rows easier to read; unprintable characters show as a dot in the ASCII column.
func DumpByteSlice(b []byte, bytesPerRow int, baseOffset int64) string {
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}
	var out strings.Builder
	for first := 0; first < len(b); first += bytesPerRow {
		fmt.Fprintf(&out, "%08x :", baseOffset+int64(first))
		ascii := make([]byte, 0, bytesPerRow)
		for j := first; j < first+bytesPerRow; j++ {
			if (j-first)%8 == 0 {
				out.WriteByte(' ')
			}
			if j >= len(b) {
				// past end of byte slice, pad so the ASCII column lines up
				out.WriteString("   ")
				ascii = append(ascii, ' ')
				continue
			}
			fmt.Fprintf(&out, " %02x", b[j])
			if b[j] < 32 || b[j] > 126 {
				ascii = append(ascii, '.')
			} else {
				ascii = append(ascii, b[j])
			}
		}
		fmt.Fprintf(&out, "  %s\n", ascii)
	}
	return out.String()
}
