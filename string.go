package rfc3986

// IndexedString is an owning, growable, zero-terminated indexed byte
// buffer: a partIndex over P ordered parts plus the payload itself.
// It is the splice core that every higher layer (URIPartsString, the
// URL façade, path segments, query parameters) reduces to.
//
// The zero value is a valid, empty IndexedString that lazily adopts
// GCStorage on first allocation.
type IndexedString struct {
	pi       partIndex
	buf      []byte
	capacity int
	storage  Storage
	handle   Buffer
}

// NewIndexedString returns an empty IndexedString over p parts backed
// by storage. A nil storage defers to GCStorage.
func NewIndexedString(p int, storage Storage) *IndexedString {
	return &IndexedString{pi: newPartIndex(p), storage: storage}
}

func (s *IndexedString) store() Storage {
	if s.storage == nil {
		s.storage = defaultStorage()
	}
	return s.storage
}

// P returns the number of parts.
func (s *IndexedString) P() int { return s.pi.P() }

// Offset returns the byte offset at which part i begins.
func (s *IndexedString) Offset(i int) int { return s.pi.Offset(i) }

// Length returns offset(last) - offset(first).
func (s *IndexedString) Length(first, last int) int { return s.pi.Length(first, last) }

// Len returns the total payload length, offset(P).
func (s *IndexedString) Len() int { return s.pi.Offset(s.pi.P()) }

// Cap returns the usable payload capacity, excluding the reserved
// terminator byte.
func (s *IndexedString) Cap() int { return s.capacity }

// Get returns the bytes of parts [first, last).
func (s *IndexedString) Get(first, last int) []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf[s.pi.Offset(first):s.pi.Offset(last)]
}

// GetPart returns the bytes of part i.
func (s *IndexedString) GetPart(i int) []byte { return s.Get(i, i+1) }

// GetAll returns the full payload.
func (s *IndexedString) GetAll() []byte { return s.Get(0, s.pi.P()) }

// CString returns a pointer to the zero-terminated payload. An empty
// string returns a pointer to a static empty string.
func (s *IndexedString) CString() []byte {
	if s.buf == nil {
		return emptyCString
	}
	return s.buf[:s.Len()+1]
}

// shiftTail memmoves buf[from:total+1] (payload tail plus terminator)
// by delta bytes and leaves the terminator's new position untouched
// (it travels with the tail). total is the pre-shift offset(P).
func (s *IndexedString) shiftTail(from, delta int) {
	if delta == 0 {
		return
	}
	total := s.Len()
	copy(s.buf[from+delta:total+1+delta], s.buf[from:total+1])
}

// reserveAll ensures capacity for n+1 bytes (payload + terminator). It
// never amortizes: callers that know the final size should call this
// once with that size. On growth the current payload is copied into a
// freshly allocated buffer and the old one released; on failure the
// IndexedString is left unchanged (allocate-then-commit).
func (s *IndexedString) reserveAll(n int) error {
	need := n + 1
	if len(s.buf) >= need {
		return nil
	}
	newBuf, err := s.store().Allocate(need)
	if err != nil {
		return newAllocFailure(need, err)
	}
	total := s.Len()
	copy(newBuf.Bytes, s.buf[:total])
	newBuf.Bytes[total] = 0
	old := s.handle
	s.store().Deallocate(old)
	s.buf = newBuf.Bytes
	s.handle = newBuf
	s.capacity = n
	return nil
}

// ReserveAll is the exported form of reserveAll (spec's reserve_all).
func (s *IndexedString) ReserveAll(n int) error { return s.reserveAll(n) }

// reserveMore grows total length by k, detecting overflow before it
// can corrupt the index.
func (s *IndexedString) reserveMore(k int) error {
	if k <= 0 {
		return nil
	}
	total := s.Len()
	newTotal := total + k
	if newTotal < total {
		return newTooLarge(k)
	}
	return s.reserveAll(newTotal)
}

// ReserveMore is the exported form of reserveMore (spec's reserve_more).
func (s *IndexedString) ReserveMore(k int) error { return s.reserveMore(k) }

// Reserve grows capacity so that part i can hold at least n bytes
// without requiring the caller to resize it yet (spec's reserve).
func (s *IndexedString) Reserve(i, n int) error {
	length := s.Length(i, i+1)
	if n <= length {
		return nil
	}
	return s.reserveMore(n - length)
}

// ClearAll resets every part to zero length, keeping capacity intact.
func (s *IndexedString) ClearAll() {
	s.pi.Reset()
	if s.buf != nil {
		s.buf[0] = 0
	}
}

// Clear removes parts [first, last), memmoving the tail left and
// collapsing the removed parts to the junction offset. Never
// allocates.
func (s *IndexedString) Clear(first, last int) {
	removed := s.Length(first, last)
	if removed == 0 {
		return
	}
	junction := s.Offset(first)
	s.shiftTail(s.Offset(last), -removed)
	for j := first; j < last; j++ {
		s.pi.idx[j] = junction
	}
	s.pi.shiftFrom(last, -removed)
}

// Resize sets length(i) = n, memmoving the suffix and growing
// capacity first if needed. Returns the (possibly relocated) bytes of
// part i.
func (s *IndexedString) Resize(i, n int) ([]byte, error) {
	length := s.Length(i, i+1)
	if n == length {
		return s.GetPart(i), nil
	}
	delta := n - length
	if delta > 0 {
		if err := s.reserveMore(delta); err != nil {
			return nil, err
		}
	}
	s.shiftTail(s.Offset(i+1), delta)
	s.pi.shiftFrom(i, delta)
	return s.GetPart(i), nil
}

// ResizeRange sets length(first, last) = n by collapsing the interior
// part boundaries onto the new junction, growing capacity first if
// needed. Precondition: last > first. Returns the bytes of part
// first, now n bytes long.
func (s *IndexedString) ResizeRange(first, last, n int) ([]byte, error) {
	length := s.Length(first, last)
	delta := n - length
	if delta > 0 {
		if err := s.reserveMore(delta); err != nil {
			return nil, err
		}
	}
	s.shiftTail(s.Offset(last), delta)
	newBoundary := s.Offset(first) + n
	for j := first; j < last; j++ {
		s.pi.idx[j] = newBoundary
	}
	s.pi.shiftFrom(last, delta)
	return s.Get(first, first+1), nil
}

// ResizeParts sets the lengths of an adjacent run of parts
// [first, first+len(lens)) in one shot, memmoving the tail once and
// writing each part's own boundary rather than collapsing the run onto
// part first the way ResizeRange does. Used by the façade to rewrite
// several authority sub-parts (user/password/host/port) together while
// keeping their individual offsets meaningful. Returns the bytes of
// the whole run, now sum(lens) long.
func (s *IndexedString) ResizeParts(first int, lens []int) ([]byte, error) {
	last := first + len(lens)
	newTotal := 0
	for _, l := range lens {
		newTotal += l
	}
	oldTotal := s.Length(first, last)
	delta := newTotal - oldTotal
	if delta > 0 {
		if err := s.reserveMore(delta); err != nil {
			return nil, err
		}
	}
	s.shiftTail(s.Offset(last), delta)
	pos := s.Offset(first)
	for j, l := range lens {
		pos += l
		s.pi.idx[first+j] = pos
	}
	s.pi.shiftFrom(last, delta)
	return s.Get(first, last), nil
}

// changePlan is the reservation produced by ReserveChangePart and
// consumed by ChangePart: the two-phase splice behind every
// element-level mutation (path segments, query parameters, component
// setters).
type changePlan struct {
	part        int
	pos         int
	eraseCount  int
	insertCount int
	delta       int
}

// ReserveChangePart pre-grows capacity for replacing erase_count bytes
// at byte offset pos within part by insert_count bytes. Growth only;
// a shrink (insert_count < erase_count) never allocates.
func (s *IndexedString) ReserveChangePart(part, pos, eraseCount, insertCount int) (changePlan, error) {
	delta := insertCount - eraseCount
	if delta > 0 {
		if err := s.reserveMore(delta); err != nil {
			return changePlan{}, err
		}
	}
	return changePlan{
		part:        part,
		pos:         s.Offset(part) + pos,
		eraseCount:  eraseCount,
		insertCount: insertCount,
		delta:       delta,
	}, nil
}

// ChangePart performs the memmove, index fix-up, and terminator write
// for a plan produced by ReserveChangePart, and returns the writable
// window the caller must completely fill (no embedded NUL) before any
// other read of the buffer.
func (s *IndexedString) ChangePart(r changePlan) []byte {
	tailStart := r.pos + r.eraseCount
	s.shiftTail(tailStart, r.delta)
	s.pi.shiftFrom(r.part, r.delta)
	return s.buf[r.pos : r.pos+r.insertCount]
}

// CopyAll replaces the entire payload and index with a foreign
// indexed view in a single shot. src must have the same P as s.
func (s *IndexedString) CopyAll(src *indexedView) error {
	total := src.len()
	if err := s.reserveAll(total); err != nil {
		return err
	}
	copy(s.buf[:total], src.GetAll())
	s.buf[total] = 0
	copy(s.pi.idx, src.pi.idx)
	return nil
}

// Copy replaces parts [first, last) with data, preserving the outer
// parts.
func (s *IndexedString) Copy(first, last int, data []byte) ([]byte, error) {
	dst, err := s.ResizeRange(first, last, len(data))
	if err != nil {
		return nil, err
	}
	copy(dst, data)
	return dst, nil
}

// CopyWithPrefix replaces parts [first, last) with prefix+data,
// written atomically with the resize.
func (s *IndexedString) CopyWithPrefix(first, last int, prefix, data []byte) ([]byte, error) {
	dst, err := s.ResizeRange(first, last, len(prefix)+len(data))
	if err != nil {
		return nil, err
	}
	n := copy(dst, prefix)
	copy(dst[n:], data)
	return dst, nil
}

// CopyWithSuffix replaces parts [first, last) with data+suffix,
// written atomically with the resize.
func (s *IndexedString) CopyWithSuffix(first, last int, data, suffix []byte) ([]byte, error) {
	dst, err := s.ResizeRange(first, last, len(data)+len(suffix))
	if err != nil {
		return nil, err
	}
	n := copy(dst, data)
	copy(dst[n:], suffix)
	return dst, nil
}

// Release returns the backing buffer to storage, leaving the
// IndexedString empty and capacity-less. Intended for explicit pool
// give-back; a plain garbage-collected IndexedString never needs it.
func (s *IndexedString) Release() {
	s.store().Deallocate(s.handle)
	s.buf = nil
	s.handle = Buffer{}
	s.capacity = 0
	s.pi.Reset()
}
