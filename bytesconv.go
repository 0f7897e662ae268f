package rfc3986

import "fmt"

// parseUint parses s as an unsigned base-10 integer, the same tight
// loop the teacher repo uses for Content-Length, generalized here for
// reading the port component.
func parseUint(s []byte) (int, error) {
	if len(s) == 0 {
		return -1, fmt.Errorf("empty integer")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1, fmt.Errorf("unexpected char at pos %d in %q", i, s)
		}
		nn := n*10 + int(c-'0')
		if nn < n {
			return -1, fmt.Errorf("too big integer %q", s)
		}
		n = nn
	}
	return n, nil
}

// appendUint appends the base-10 rendering of n to dst, mirroring
// parseUint's allocation-light style.
func appendUint(dst []byte, n int) []byte {
	if n == 0 {
		return append(dst, '0')
	}
	if n < 0 {
		panic("rfc3986: appendUint called with a negative port")
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[i:]...)
}
