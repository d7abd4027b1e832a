// Package hex encodes bytes and integers as lowercase hexadecimal.
//
// Decoding is lenient: every character outside [0-9a-fA-F] is skipped, so
// separators such as ':' or '-' and surrounding whitespace are accepted.
// A trailing unpaired nibble is dropped.
package hex

const chars = "0123456789abcdef"

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int { return n * 2 }

// Encode returns the lowercase hex encoding of b.
func Encode(b []byte) string {
	return string(Append(make([]byte, 0, EncodedLen(len(b))), b))
}

// Append appends the hex encoding of b to dst and returns the extended slice.
func Append(dst, b []byte) []byte {
	for _, c := range b {
		dst = append(dst, chars[c>>4], chars[c&0x0f])
	}
	return dst
}

// EncodeTo writes the hex encoding of src into dst and returns the number of
// characters written. It panics if dst is shorter than EncodedLen(len(src)).
func EncodeTo(dst, src []byte) int {
	if len(dst) < EncodedLen(len(src)) {
		panic("hex: destination too short")
	}
	j := 0
	for _, c := range src {
		dst[j] = chars[c>>4]
		dst[j+1] = chars[c&0x0f]
		j += 2
	}
	return j
}

// EncodeUint64 returns the 16-digit hex form of v. If skipLeadingZeroes is
// set, leading zero digits are omitted and zero encodes as the empty string.
func EncodeUint64(v uint64, skipLeadingZeroes bool) string {
	var buf [16]byte
	return string(AppendUint64(buf[:0], v, skipLeadingZeroes))
}

// AppendUint64 appends the hex form of v to dst, see EncodeUint64.
func AppendUint64(dst []byte, v uint64, skipLeadingZeroes bool) []byte {
	started := !skipLeadingZeroes
	for i := 0; i < 16; i++ {
		d := v >> 60
		if d != 0 || started {
			dst = append(dst, chars[d])
			started = true
		}
		v <<= 4
	}
	return dst
}

// Decode decodes s, ignoring all non-hexadecimal characters.
func Decode(s string) []byte {
	b := make([]byte, 0, len(s)/2+1)
	var acc byte
	high := false
	for i := 0; i < len(s); i++ {
		n, ok := nibble(s[i])
		if !ok {
			continue
		}
		acc = acc<<4 | n
		if high {
			b = append(b, acc)
		}
		high = !high
	}
	return b
}

// DecodeUint64 decodes s as a big-endian integer, ignoring all
// non-hexadecimal characters. Only complete bytes contribute; digits beyond
// the low 8 bytes shift out.
func DecodeUint64(s string) uint64 {
	var v uint64
	var acc byte
	high := false
	for i := 0; i < len(s); i++ {
		n, ok := nibble(s[i])
		if !ok {
			continue
		}
		acc = acc<<4 | n
		if high {
			v = v<<8 | uint64(acc)
		}
		high = !high
	}
	return v
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
