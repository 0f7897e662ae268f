package rfc3986

// Part identifiers for URIPartsString's fixed P=8 layout (spec.md §3).
const (
	partScheme = iota
	partUser
	partPassword
	partHost
	partPort
	partPath
	partQuery
	partFragment
	nParts
)

// URIPartsString specializes IndexedString to the 8 named URI parts,
// caching the auxiliary counters (segment count, parameter count,
// host classification) that the element iterators in segments.go and
// params.go use as stop conditions, and that would otherwise require
// re-scanning a variable-length region after every mutation.
type URIPartsString struct {
	*IndexedString
	NSeg     int
	NParam   int
	HostKind HostKind
}

// NewURIPartsString returns an empty URIPartsString backed by storage
// (nil defers to GCStorage).
func NewURIPartsString(storage Storage) *URIPartsString {
	return &URIPartsString{IndexedString: NewIndexedString(nParts, storage)}
}

func countByte(b []byte, c byte) int {
	n := 0
	for _, x := range b {
		if x == c {
			n++
		}
	}
	return n
}

// syncCounters recomputes NSeg and NParam from the current path and
// query bytes (I7, I8). HostKind is not derivable from bytes alone
// (an empty host and an absent host both store zero bytes) and so
// must be set explicitly by whichever operation changed the host.
func (d *URIPartsString) syncCounters() {
	d.NSeg = countByte(d.GetPart(partPath), '/')
	query := d.GetPart(partQuery)
	if len(query) == 0 {
		d.NParam = 0
	} else {
		d.NParam = 1 + countByte(query, '&')
	}
}

// Clear overrides IndexedString.Clear to keep NSeg/NParam in sync
// when a clear touches the path or query parts.
func (d *URIPartsString) Clear(first, last int) {
	d.IndexedString.Clear(first, last)
	d.syncCounters()
}

// ClearAll overrides IndexedString.ClearAll to reset all auxiliary
// counters alongside the part index.
func (d *URIPartsString) ClearAll() {
	d.IndexedString.ClearAll()
	d.NSeg, d.NParam, d.HostKind = 0, 0, HostNone
}

// CopyAll overrides IndexedString.CopyAll to recompute counters from
// the freshly copied payload.
func (d *URIPartsString) CopyAll(src *indexedView) error {
	if err := d.IndexedString.CopyAll(src); err != nil {
		return err
	}
	d.syncCounters()
	return nil
}

// Copy overrides IndexedString.Copy to recompute counters when the
// copied range touches the path or query parts.
func (d *URIPartsString) Copy(first, last int, data []byte) ([]byte, error) {
	dst, err := d.IndexedString.Copy(first, last, data)
	if err != nil {
		return nil, err
	}
	d.syncCounters()
	return dst, nil
}
