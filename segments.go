package rfc3986

// PathSegment is a bidirectional iterator element over the path part:
// an absolute byte range [offset, offset+length) into the owning
// URL's buffer, where offset points at the segment's leading '/' (at
// its first byte for the first segment of a path that does not start
// with '/', or equals pathEnd() for an end-of-range sentinel with
// length 0).
//
// Like every element view in this package, a PathSegment borrows from
// its URL and is invalidated by any subsequent mutation.
type PathSegment struct {
	u      *URL
	offset int
	length int
}

func (u *URL) pathStart() int { return u.Offset(partPath) }
func (u *URL) pathEnd() int   { return u.Offset(partQuery) }

// nextSlash scans buf[from:end) for the next '/', returning end if
// none is found. Grounded on Nanite's PathParser.parse forward scan,
// adapted to scan within an absolute buffer range instead of a
// standalone path string.
func nextSlash(buf []byte, from, end int) int {
	for i := from; i < end; i++ {
		if buf[i] == '/' {
			return i
		}
	}
	return end
}

// PathBegin returns the first segment, or an empty iterator equal to
// PathEnd when the path has no segments (NSeg == 0).
func (u *URL) PathBegin() PathSegment {
	end := u.pathEnd()
	if u.NSeg == 0 {
		return PathSegment{u: u, offset: end}
	}
	start := u.pathStart()
	stop := nextSlash(u.buf, start+1, end)
	return PathSegment{u: u, offset: start, length: stop - start}
}

// PathEnd returns the one-past-the-end sentinel.
func (u *URL) PathEnd() PathSegment {
	return PathSegment{u: u, offset: u.pathEnd()}
}

// Equal reports whether s and o denote the same position.
func (s PathSegment) Equal(o PathSegment) bool {
	return s.u == o.u && s.offset == o.offset && s.length == o.length
}

// Next advances to the following segment, or to PathEnd.
func (s PathSegment) Next() PathSegment {
	end := s.u.pathEnd()
	next := s.offset + s.length
	if next >= end {
		return PathSegment{u: s.u, offset: end}
	}
	stop := nextSlash(s.u.buf, next+1, end)
	return PathSegment{u: s.u, offset: next, length: stop - next}
}

// Prev scans backward to the previous segment. A no-op at Begin.
func (s PathSegment) Prev() PathSegment {
	start := s.u.pathStart()
	if s.offset <= start {
		return s
	}
	buf := s.u.buf
	i := s.offset - 1
	for i > start && buf[i] != '/' {
		i--
	}
	return PathSegment{u: s.u, offset: i, length: s.offset - i}
}

// Value returns the segment's bytes without its leading '/'.
func (s PathSegment) Value() []byte {
	if s.length == 0 {
		return nil
	}
	b := s.u.buf[s.offset : s.offset+s.length]
	if b[0] == '/' {
		return b[1:]
	}
	return b
}

// InsertSegmentEncoded inserts "/"+raw at pos, raw already
// percent-encoded. The leading '/' is written regardless of whether a
// preceding segment exists, preserving the invariant that a path with
// N segments has exactly N '/' characters that begin them.
//
// Inserting at PathEnd() is special-cased when the path currently
// ends in a bare trailing '/' (an empty last segment): that '/' is
// the empty-path placeholder, not a real zero-length segment, so the
// insert fills it in place instead of appending a second '/' after
// it. Without this, appending to "http://x/" would produce "//a"
// (nseg 2) rather than "/a" (nseg 1).
func (u *URL) InsertSegmentEncoded(pos PathSegment, raw []byte) (PathSegment, error) {
	if err := PCharCodec.Validate(raw); err != nil {
		return PathSegment{}, err
	}

	if pos.offset == u.pathEnd() {
		if prev := pos.Prev(); prev.offset != pos.offset && len(prev.Value()) == 0 {
			relPos := prev.offset - u.pathStart()
			insertCount := 1 + len(raw)
			plan, err := u.ReserveChangePart(partPath, relPos, prev.length, insertCount)
			if err != nil {
				return PathSegment{}, err
			}
			window := u.ChangePart(plan)
			window[0] = '/'
			copy(window[1:], raw)
			return PathSegment{u: u, offset: prev.offset, length: insertCount}, nil
		}
	}

	relPos := pos.offset - u.pathStart()
	insertCount := 1 + len(raw)
	plan, err := u.ReserveChangePart(partPath, relPos, 0, insertCount)
	if err != nil {
		return PathSegment{}, err
	}
	window := u.ChangePart(plan)
	window[0] = '/'
	copy(window[1:], raw)
	u.NSeg++
	return PathSegment{u: u, offset: pos.offset, length: insertCount}, nil
}

// InsertSegment percent-encodes decoded with PCharCodec and inserts
// it at pos.
func (u *URL) InsertSegment(pos PathSegment, decoded []byte) (PathSegment, error) {
	size := PCharCodec.EncodedSize(decoded)
	buf := make([]byte, size)
	PCharCodec.Encode(buf, decoded)
	return u.InsertSegmentEncoded(pos, buf)
}

// EraseSegments removes the byte range [first, last), adjusting NSeg
// by the number of '/' characters it contained.
func (u *URL) EraseSegments(first, last PathSegment) error {
	if first.offset == last.offset {
		return nil
	}
	removed := countByte(u.buf[first.offset:last.offset], '/')
	relPos := first.offset - u.pathStart()
	plan, err := u.ReserveChangePart(partPath, relPos, last.offset-first.offset, 0)
	if err != nil {
		return err
	}
	u.ChangePart(plan)
	u.NSeg -= removed
	return nil
}

// ReplaceSegment rewrites pos's value in place, percent-encoding
// decoded, without touching NSeg. Preserves pos's leading '/' when it
// has one; the first segment of a path-rootless or path-noscheme path
// (e.g. the "a" in "mailto:a/b") has none, per Value's own check.
func (u *URL) ReplaceSegment(pos PathSegment, decoded []byte) (PathSegment, error) {
	size := PCharCodec.EncodedSize(decoded)
	encoded := make([]byte, size)
	PCharCodec.Encode(encoded, decoded)

	hasSlash := pos.length > 0 && u.buf[pos.offset] == '/'
	relPos := pos.offset - u.pathStart()
	eraseCount := pos.length
	newLength := len(encoded)
	if hasSlash {
		relPos++
		eraseCount--
		newLength++
	}
	plan, err := u.ReserveChangePart(partPath, relPos, eraseCount, len(encoded))
	if err != nil {
		return PathSegment{}, err
	}
	window := u.ChangePart(plan)
	copy(window, encoded)
	return PathSegment{u: u, offset: pos.offset, length: newLength}, nil
}
