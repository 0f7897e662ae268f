package rfc3986

var emptyCString = []byte{0}

// indexedView pairs a partIndex with a non-owning byte slice. The
// slice is nil iff every offset is zero. Sub-slicing never allocates.
type indexedView struct {
	pi partIndex
	s  []byte
}

func newIndexedView(p int) indexedView {
	return indexedView{pi: newPartIndex(p)}
}

// Get returns the bytes of parts [first, last).
func (v *indexedView) Get(first, last int) []byte {
	if v.s == nil {
		return nil
	}
	return v.s[v.pi.Offset(first):v.pi.Offset(last)]
}

// GetPart returns the bytes of part i.
func (v *indexedView) GetPart(i int) []byte {
	return v.Get(i, i+1)
}

// GetAll returns the full payload.
func (v *indexedView) GetAll() []byte {
	return v.Get(0, v.pi.P())
}

// CString returns a pointer to a zero-terminated buffer. An empty view
// returns a pointer to a static empty string, matching indexed strings
// whose terminator always lives one byte past the payload. Falls back
// to the raw slice if the view was built without a trailing zero
// byte, rather than slicing out of range.
func (v *indexedView) CString() []byte {
	if v.s == nil {
		return emptyCString
	}
	total := v.pi.Offset(v.pi.P())
	if total+1 > len(v.s) {
		return v.s
	}
	return v.s[:total+1]
}

func (v *indexedView) len() int {
	return v.pi.Offset(v.pi.P())
}
