package rfc3986

// QueryParam is a bidirectional iterator element over the query part:
// an absolute offset at the element's separator byte ('?' for the
// first element, '&' for the rest), plus nk (separator+key length) and
// nv (0, or '='+value length). Borrows from its URL; invalidated by
// any subsequent mutation, same as PathSegment.
//
// Grounded on the teacher's Args type (args.go): Args.Set/SetBytes
// hold parallel key/value slices and re-serialize on every read
// through AppendBytes/appendQuotedArg. Here there is no parallel
// slice — every read and write goes straight through the owning D
// part's bytes via ChangePart, because the spec requires a single
// splice core rather than a detached serialization step.
type QueryParam struct {
	u      *URL
	offset int
	nk     int
	nv     int
}

func (u *URL) queryStart() int { return u.Offset(partQuery) }
func (u *URL) queryEnd() int   { return u.Offset(partFragment) }

// paramExtentAt scans the element beginning at the separator byte at
// pos, returning its nk (sep+key) and nv (0, or "="+value) widths.
func (u *URL) paramExtentAt(pos, end int) (nk, nv int) {
	buf := u.buf
	i := pos + 1
	for i < end && buf[i] != '=' && buf[i] != '&' {
		i++
	}
	nk = i - pos
	if i < end && buf[i] == '=' {
		j := i + 1
		for j < end && buf[j] != '&' {
			j++
		}
		nv = j - i
	}
	return nk, nv
}

// QueryBegin returns the first parameter, or an empty iterator equal
// to QueryEnd when the query has no parameters (NParam == 0).
func (u *URL) QueryBegin() QueryParam {
	end := u.queryEnd()
	if u.NParam == 0 {
		return QueryParam{u: u, offset: end}
	}
	start := u.queryStart()
	nk, nv := u.paramExtentAt(start, end)
	return QueryParam{u: u, offset: start, nk: nk, nv: nv}
}

// QueryEnd returns the one-past-the-end sentinel.
func (u *URL) QueryEnd() QueryParam {
	return QueryParam{u: u, offset: u.queryEnd()}
}

// Equal reports whether p and o denote the same position.
func (p QueryParam) Equal(o QueryParam) bool {
	return p.u == o.u && p.offset == o.offset && p.nk == o.nk && p.nv == o.nv
}

// Next advances to the following parameter, or to QueryEnd.
func (p QueryParam) Next() QueryParam {
	end := p.u.queryEnd()
	next := p.offset + p.nk + p.nv
	if next >= end {
		return QueryParam{u: p.u, offset: end}
	}
	nk, nv := p.u.paramExtentAt(next, end)
	return QueryParam{u: p.u, offset: next, nk: nk, nv: nv}
}

// Prev scans backward to the previous parameter. A no-op at Begin.
func (p QueryParam) Prev() QueryParam {
	start := p.u.queryStart()
	if p.offset <= start {
		return p
	}
	buf := p.u.buf
	i := p.offset - 1
	for i > start && buf[i] != '&' {
		i--
	}
	nk, nv := p.u.paramExtentAt(i, p.u.queryEnd())
	return QueryParam{u: p.u, offset: i, nk: nk, nv: nv}
}

// Value returns the element's (key, value) views. value is nil when
// the element has no '=' (as opposed to an empty value after '=').
func (p QueryParam) Value() (key, value []byte) {
	buf := p.u.buf
	key = buf[p.offset+1 : p.offset+p.nk]
	if p.nv == 0 {
		return key, nil
	}
	value = buf[p.offset+p.nk+1 : p.offset+p.nk+p.nv]
	return key, value
}

// FindParam returns the first parameter whose key is codec-equal to key,
// or QueryEnd if none matches.
func (u *URL) FindParam(key []byte) QueryParam {
	for p := u.QueryBegin(); p.offset != u.queryEnd(); p = p.Next() {
		k, _ := p.Value()
		if QueryKeyCodec.KeyEqual(k, key) {
			return p
		}
	}
	return u.QueryEnd()
}

// ContainsParam reports whether any parameter's key is codec-equal to
// key.
func (u *URL) ContainsParam(key []byte) bool {
	return u.FindParam(key).offset != u.queryEnd()
}

// CountParam returns the number of parameters whose key is
// codec-equal to key.
func (u *URL) CountParam(key []byte) int {
	n := 0
	for p := u.QueryBegin(); p.offset != u.queryEnd(); p = p.Next() {
		k, _ := p.Value()
		if QueryKeyCodec.KeyEqual(k, key) {
			n++
		}
	}
	return n
}

// GetParam returns the value of the first parameter whose key is
// codec-equal to key.
func (u *URL) GetParam(key []byte) (value []byte, hasValue, found bool) {
	p := u.FindParam(key)
	if p.offset == u.queryEnd() {
		return nil, false, false
	}
	_, v := p.Value()
	return v, v != nil, true
}

// InsertParamEncoded inserts a key[=value] pair at pos, key and value
// already percent-encoded. hasValue distinguishes a present-but-empty
// value ("b=") from an absent one ("c"). Preserves the rule that the
// first element's separator is '?' and every other element's is '&'.
func (u *URL) InsertParamEncoded(pos QueryParam, key, value []byte, hasValue bool) (QueryParam, error) {
	if err := QueryKeyCodec.Validate(key); err != nil {
		return QueryParam{}, err
	}
	if hasValue {
		if err := QueryValueCodec.Validate(value); err != nil {
			return QueryParam{}, err
		}
	}

	start := u.queryStart()
	sep := byte('&')
	if pos.offset == start {
		sep = '?'
	}
	nk := 1 + len(key)
	nv := 0
	if hasValue {
		nv = 1 + len(value)
	}

	hadLeadingParam := u.NParam > 0 && pos.offset == start
	relPos := pos.offset - start
	plan, err := u.ReserveChangePart(partQuery, relPos, 0, nk+nv)
	if err != nil {
		return QueryParam{}, err
	}
	window := u.ChangePart(plan)
	window[0] = sep
	n := copy(window[1:], key)
	n++
	if hasValue {
		window[n] = '='
		copy(window[n+1:], value)
	}

	if hadLeadingParam {
		shifted := pos.offset + nk + nv
		if shifted < len(u.buf) && u.buf[shifted] == '?' {
			u.buf[shifted] = '&'
		}
	}
	u.NParam++
	return QueryParam{u: u, offset: pos.offset, nk: nk, nv: nv}, nil
}

// InsertParam percent-encodes key and value with the query codecs and
// inserts them at pos.
func (u *URL) InsertParam(pos QueryParam, key, value []byte, hasValue bool) (QueryParam, error) {
	ek := make([]byte, QueryKeyCodec.EncodedSize(key))
	QueryKeyCodec.Encode(ek, key)
	var ev []byte
	if hasValue {
		ev = make([]byte, QueryValueCodec.EncodedSize(value))
		QueryValueCodec.Encode(ev, value)
	}
	return u.InsertParamEncoded(pos, ek, ev, hasValue)
}

// EraseParams removes the parameters in [first, last), adjusting
// NParam and re-marking the new first element's separator as '?' if
// the removal reached the front of the query.
func (u *URL) EraseParams(first, last QueryParam) error {
	if first.offset == last.offset {
		return nil
	}
	removed := 0
	for p := first; p.offset < last.offset; p = p.Next() {
		removed++
	}

	start := u.queryStart()
	relPos := first.offset - start
	plan, err := u.ReserveChangePart(partQuery, relPos, last.offset-first.offset, 0)
	if err != nil {
		return err
	}
	u.ChangePart(plan)
	u.NParam -= removed

	if u.Length(partQuery, partQuery+1) > 0 && u.buf[start] == '&' {
		u.buf[start] = '?'
	}
	return nil
}

// ReplaceParam rewrites pos's key/value in place, preserving its
// separator byte and leaving NParam unchanged.
func (u *URL) ReplaceParam(pos QueryParam, key, value []byte, hasValue bool) (QueryParam, error) {
	ek := make([]byte, QueryKeyCodec.EncodedSize(key))
	QueryKeyCodec.Encode(ek, key)
	var ev []byte
	if hasValue {
		ev = make([]byte, QueryValueCodec.EncodedSize(value))
		QueryValueCodec.Encode(ev, value)
	}
	nk := 1 + len(ek)
	nv := 0
	if hasValue {
		nv = 1 + len(ev)
	}

	sep := u.buf[pos.offset]
	relPos := pos.offset - u.queryStart()
	plan, err := u.ReserveChangePart(partQuery, relPos, pos.nk+pos.nv, nk+nv)
	if err != nil {
		return QueryParam{}, err
	}
	window := u.ChangePart(plan)
	window[0] = sep
	n := copy(window[1:], ek)
	n++
	if hasValue {
		window[n] = '='
		copy(window[n+1:], ev)
	}
	return QueryParam{u: u, offset: pos.offset, nk: nk, nv: nv}, nil
}
