package rfc3986

// URL is the public façade over a URIPartsString: one getter/setter
// pair per named component, each reducing to a splice on the embedded
// D layer plus a call out to the parser/codec capabilities.
type URL struct {
	*URIPartsString
	parser Parser
}

// NewURL returns an empty URL backed by storage (nil defers to
// GCStorage).
func NewURL(storage Storage) *URL {
	return &URL{URIPartsString: NewURIPartsString(storage), parser: DefaultParser{}}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

// percentDecode expands every %XX triplet in src, leaving other bytes
// untouched.
func percentDecode(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		b, next := decodeByteAt(src, i)
		dst = append(dst, b)
		i = next
	}
	return dst
}

func stripBracketsBytes(b []byte) []byte {
	if len(b) >= 2 && b[0] == '[' && b[len(b)-1] == ']' {
		return b[1 : len(b)-1]
	}
	return b
}

// EncodedURL returns the full stored payload.
func (u *URL) EncodedURL() []byte { return u.GetAll() }

// EncodedOrigin returns scheme..path (path included, query and
// fragment excluded), the "origin" prefix of the URL.
func (u *URL) EncodedOrigin() []byte { return u.Get(partScheme, partQuery) }

// String renders the full stored form, for fmt/logging.
func (u *URL) String() string { return string(u.GetAll()) }

// Reset clears every part back to empty, keeping capacity intact.
func (u *URL) Reset() { u.ClearAll() }

// SetEncodedURL validates raw as a full RFC 3986 URI and replaces the
// entire stored payload with its parsed, re-delimited components.
func (u *URL) SetEncodedURL(raw []byte) error {
	d, err := u.parser.ParseURL(raw)
	if err != nil {
		return err
	}

	var schemePart []byte
	if len(d.Scheme) > 0 {
		schemePart = append(append([]byte(nil), d.Scheme...), ':')
	}

	var userPart, passwordPart, hostPart, portPart []byte
	if d.HasAuthority {
		userPart = append([]byte("//"), d.User...)
		if d.HasUserinfo {
			if len(d.Password) > 0 {
				passwordPart = append(append([]byte{':'}, d.Password...), '@')
			} else {
				passwordPart = []byte{'@'}
			}
		}
		hostPart = cloneBytes(d.Host)
		if len(d.Port) > 0 {
			portPart = append([]byte{':'}, d.Port...)
		}
	}

	pathPart := cloneBytes(d.Path)
	var queryPart []byte
	if len(d.Query) > 0 {
		queryPart = append([]byte{'?'}, d.Query...)
	}
	var fragmentPart []byte
	if len(d.Fragment) > 0 {
		fragmentPart = append([]byte{'#'}, d.Fragment...)
	}

	parts := [nParts][]byte{schemePart, userPart, passwordPart, hostPart, portPart, pathPart, queryPart, fragmentPart}
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	payload := make([]byte, total)
	n := 0
	offsets := make([]int, nParts)
	for i, p := range parts {
		n += copy(payload[n:], p)
		offsets[i] = n
	}

	view := newIndexedView(nParts)
	view.pi.idx = offsets
	view.s = append(payload, 0)

	if err := u.CopyAll(&view); err != nil {
		return err
	}
	u.HostKind = d.HostKind
	return nil
}

// rewriteAuthority replaces the four authority sub-parts (user,
// password, host, port) in one splice and installs hostKind. Callers
// must pass slices that do not alias the façade's own buffer (clone
// first) since this may memmove that buffer before writing.
func (u *URL) rewriteAuthority(user, password, host, port []byte, hostKind HostKind) error {
	lens := [4]int{len(user), len(password), len(host), len(port)}
	dst, err := u.ResizeParts(partUser, lens[:])
	if err != nil {
		return err
	}
	n := copy(dst, user)
	n += copy(dst[n:], password)
	n += copy(dst[n:], host)
	copy(dst[n:], port)
	u.HostKind = hostKind
	return nil
}

// hasAuthority reports whether any of user/password/host/port holds
// bytes, i.e. length(user..path) > 0.
func (u *URL) hasAuthority() bool { return u.Length(partUser, partPath) > 0 }

// HasAuthority reports whether the URL carries an authority component.
func (u *URL) HasAuthority() bool { return u.hasAuthority() }

// hasUserinfo reports whether there is user content after "//" or any
// password content (a "@" present).
func (u *URL) hasUserinfo() bool {
	return u.Length(partUser, partUser+1) > 2 || u.Length(partPassword, partPassword+1) > 0
}

// HasUserinfo reports whether the URL carries userinfo.
func (u *URL) HasUserinfo() bool { return u.hasUserinfo() }

// EncodedScheme returns the scheme without its trailing ':', or nil if
// absent.
func (u *URL) EncodedScheme() []byte {
	p := u.GetPart(partScheme)
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// SetScheme validates raw as a scheme production and stores it with a
// trailing ':'. Empty raw clears the scheme.
func (u *URL) SetScheme(raw []byte) error {
	if len(raw) == 0 {
		u.Clear(partScheme, partScheme+1)
		return nil
	}
	if err := u.parser.ParseScheme(raw); err != nil {
		return err
	}
	_, err := u.CopyWithSuffix(partScheme, partScheme+1, raw, []byte{':'})
	return err
}

// NormalizeScheme lower-cases the ASCII letters of the stored scheme
// in place, touching only the scheme bytes.
func (u *URL) NormalizeScheme() {
	p := u.GetPart(partScheme)
	for i := 0; i < len(p)-1; i++ {
		if p[i] >= 'A' && p[i] <= 'Z' {
			p[i] += 'a' - 'A'
		}
	}
}

// EncodedAuthority returns the concatenated user+password+host+port
// bytes (already carrying their own delimiters), or nil if absent.
func (u *URL) EncodedAuthority() []byte {
	if !u.hasAuthority() {
		return nil
	}
	return u.Get(partUser, partPath)
}

// SetEncodedAuthority reparses raw ("user:password@host:port", no
// leading "//") and splits it across the four authority sub-parts.
// Empty raw removes the authority entirely.
func (u *URL) SetEncodedAuthority(raw []byte) error {
	if len(raw) == 0 {
		return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
	}
	ad, err := u.parser.ParseAuthority(raw)
	if err != nil {
		return err
	}
	userPart := append([]byte("//"), ad.User...)
	var passwordPart []byte
	if ad.HasUserinfo {
		if len(ad.Password) > 0 {
			passwordPart = append(append([]byte{':'}, ad.Password...), '@')
		} else {
			passwordPart = []byte{'@'}
		}
	}
	var portPart []byte
	if len(ad.Port) > 0 {
		portPart = append([]byte{':'}, ad.Port...)
	}
	return u.rewriteAuthority(userPart, passwordPart, cloneBytes(ad.Host), portPart, ad.HostKind)
}

// EncodedUserinfo returns "user[:password]" without the trailing '@',
// or nil if there is no userinfo.
func (u *URL) EncodedUserinfo() []byte {
	if !u.hasUserinfo() {
		return nil
	}
	user := u.GetPart(partUser)[2:]
	pass := u.GetPart(partPassword)
	if len(pass) == 0 {
		return cloneBytes(user)
	}
	if pass[0] != ':' {
		return cloneBytes(user) // bare "@", no password content
	}
	body := pass[1 : len(pass)-1]
	out := make([]byte, 0, len(user)+1+len(body))
	out = append(out, user...)
	out = append(out, ':')
	out = append(out, body...)
	return out
}

func splitUserinfo(raw []byte) (user, pass []byte, hasPass bool) {
	if i := indexRawByte(raw, ':'); i >= 0 {
		return raw[:i], raw[i+1:], true
	}
	return raw, nil, false
}

// SetEncodedUserinfo sets "user[:password]". Empty raw clears the
// userinfo, shrinking the authority to bare "//" when a host or port
// remains, or removing it entirely otherwise.
func (u *URL) SetEncodedUserinfo(raw []byte) error {
	if len(raw) == 0 {
		host := cloneBytes(u.GetPart(partHost))
		port := cloneBytes(u.GetPart(partPort))
		if len(host) == 0 && len(port) == 0 {
			return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
		}
		return u.rewriteAuthority([]byte("//"), nil, host, port, u.HostKind)
	}
	userRaw, passRaw, hasPass := splitUserinfo(raw)
	if err := UserinfoExclColonCodec.Validate(userRaw); err != nil {
		return err
	}
	if hasPass {
		if err := UserinfoExclColonCodec.Validate(passRaw); err != nil {
			return err
		}
	}
	host := cloneBytes(u.GetPart(partHost))
	port := cloneBytes(u.GetPart(partPort))
	userPart := append([]byte("//"), userRaw...)
	var passwordPart []byte
	if hasPass {
		passwordPart = append(append([]byte{':'}, passRaw...), '@')
	} else {
		passwordPart = []byte{'@'}
	}
	return u.rewriteAuthority(userPart, passwordPart, host, port, u.HostKind)
}

// EncodedUser returns the user sub-half, or nil if there is no
// authority.
func (u *URL) EncodedUser() []byte {
	p := u.GetPart(partUser)
	if len(p) < 2 {
		return nil
	}
	return cloneBytes(p[2:])
}

// SetUser writes the user sub-half, synthesizing "//" if no authority
// existed yet and a bare "@" password boundary if none existed.
// Empty raw clears the user half, removing the authority entirely if
// nothing else remains.
func (u *URL) SetUser(raw []byte) error {
	if len(raw) > 0 {
		if err := UserinfoExclColonCodec.Validate(raw); err != nil {
			return err
		}
	}
	password := cloneBytes(u.GetPart(partPassword))
	host := cloneBytes(u.GetPart(partHost))
	port := cloneBytes(u.GetPart(partPort))
	if len(raw) == 0 && len(password) == 0 && len(host) == 0 && len(port) == 0 {
		return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
	}
	userPart := append([]byte("//"), raw...)
	if len(password) == 0 {
		password = []byte{'@'}
	}
	return u.rewriteAuthority(userPart, password, host, port, u.HostKind)
}

// EncodedPassword returns the password sub-half, or nil if there is
// none (including the bare "@" case).
func (u *URL) EncodedPassword() []byte {
	p := u.GetPart(partPassword)
	if len(p) == 0 || p[0] != ':' {
		return nil
	}
	return cloneBytes(p[1 : len(p)-1])
}

// SetPassword writes the password sub-half, synthesizing "//" for the
// user half if no authority existed yet. Empty raw clears the
// password, leaving a bare "@" if the user half is non-empty, and
// removes the authority entirely if no user, host or port remains.
func (u *URL) SetPassword(raw []byte) error {
	if len(raw) > 0 {
		if err := UserinfoExclColonCodec.Validate(raw); err != nil {
			return err
		}
	}
	user := cloneBytes(u.GetPart(partUser))
	host := cloneBytes(u.GetPart(partHost))
	port := cloneBytes(u.GetPart(partPort))
	userPart := user
	if len(userPart) == 0 {
		userPart = []byte("//")
	}
	if len(raw) == 0 {
		if len(user) <= 2 && len(host) == 0 && len(port) == 0 {
			return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
		}
		var passwordPart []byte
		if len(user) > 2 {
			passwordPart = []byte{'@'}
		}
		return u.rewriteAuthority(userPart, passwordPart, host, port, u.HostKind)
	}
	passwordPart := append(append([]byte{':'}, raw...), '@')
	return u.rewriteAuthority(userPart, passwordPart, host, port, u.HostKind)
}

// EncodedHost returns the stored host bytes verbatim (IPv6 literals
// keep their brackets).
func (u *URL) EncodedHost() []byte { return u.GetPart(partHost) }

// SetHost classifies and stores raw as the host. Percent-encodes
// name-kind hosts; stores ipv4 hosts verbatim and ipv6/ipvfuture hosts
// bracketed. Empty raw clears the host, removing the authority
// entirely if no port remains.
func (u *URL) SetHost(raw []byte) error {
	if len(raw) == 0 {
		user := cloneBytes(u.GetPart(partUser))
		password := cloneBytes(u.GetPart(partPassword))
		port := cloneBytes(u.GetPart(partPort))
		if len(port) == 0 {
			return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
		}
		if len(user) == 0 {
			user = []byte("//")
		}
		return u.rewriteAuthority(user, password, nil, port, HostNone)
	}
	plain := stripBracketsBytes(raw)
	kind, err := u.parser.ParsePlainHostname(plain)
	if err != nil {
		return err
	}
	var stored []byte
	switch kind {
	case HostName:
		size := RegNameCodec.EncodedSize(plain)
		stored = make([]byte, size)
		RegNameCodec.Encode(stored, plain)
	case HostIPv6, HostIPvFuture:
		// IPv6/IPvFuture literals must keep their brackets in the
		// stored form: a bracketless "2001:db8::1" is indistinguishable
		// from "host:port" on a later re-parse.
		stored = make([]byte, 0, len(plain)+2)
		stored = append(stored, '[')
		stored = append(stored, plain...)
		stored = append(stored, ']')
	default:
		stored = cloneBytes(plain)
	}
	user := cloneBytes(u.GetPart(partUser))
	password := cloneBytes(u.GetPart(partPassword))
	port := cloneBytes(u.GetPart(partPort))
	if len(user) == 0 {
		user = []byte("//")
	}
	return u.rewriteAuthority(user, password, stored, port, kind)
}

// EncodedPort returns the port digits without the leading ':', or nil
// if absent.
func (u *URL) EncodedPort() []byte {
	p := u.GetPart(partPort)
	if len(p) <= 1 {
		return nil
	}
	return cloneBytes(p[1:])
}

// Port parses the stored port digits as an integer. Returns 0, nil if
// no port is stored.
func (u *URL) Port() (int, error) {
	p := u.EncodedPort()
	if len(p) == 0 {
		return 0, nil
	}
	return parseUint(p)
}

// SetPortBytes validates raw as *DIGIT and stores it with a leading
// ':'. Empty raw clears the port, removing the authority entirely if
// it would otherwise be bare "//".
func (u *URL) SetPortBytes(raw []byte) error {
	if len(raw) == 0 {
		user := cloneBytes(u.GetPart(partUser))
		password := cloneBytes(u.GetPart(partPassword))
		host := cloneBytes(u.GetPart(partHost))
		if len(host) == 0 && len(password) == 0 && len(user) <= 2 {
			return u.rewriteAuthority(nil, nil, nil, nil, HostNone)
		}
		if len(user) == 0 {
			user = []byte("//")
		}
		return u.rewriteAuthority(user, password, host, nil, u.HostKind)
	}
	if err := u.parser.MatchPort(raw); err != nil {
		return err
	}
	user := cloneBytes(u.GetPart(partUser))
	password := cloneBytes(u.GetPart(partPassword))
	host := cloneBytes(u.GetPart(partHost))
	if len(user) == 0 {
		user = []byte("//")
	}
	portPart := append([]byte{':'}, raw...)
	return u.rewriteAuthority(user, password, host, portPart, u.HostKind)
}

// SetPort renders n in base 10 and forwards to SetPortBytes. A
// negative n returns ErrInvalidPart rather than panicking.
func (u *URL) SetPort(n int) error {
	if n < 0 {
		return newInvalidPart("port", "negative integer")
	}
	return u.SetPortBytes(appendUint(nil, n))
}

// EncodedPath returns the stored path bytes verbatim.
func (u *URL) EncodedPath() []byte { return u.GetPart(partPath) }

// Path percent-decodes the stored path.
func (u *URL) Path() []byte { return percentDecode(u.EncodedPath()) }

// validatePath selects the path-class validator per RFC 3986 §3.3
// based on whether an authority or scheme is present and whether raw
// starts with '/'.
func (u *URL) validatePath(raw []byte) error {
	switch {
	case u.hasAuthority():
		return u.parser.ParsePathAbempty(raw)
	case len(raw) > 0 && raw[0] == '/':
		return u.parser.ParsePathAbsolute(raw)
	case len(u.EncodedScheme()) > 0:
		return u.parser.ParsePathRootless(raw)
	default:
		return u.parser.ParsePathNoscheme(raw)
	}
}

// SetEncodedPath validates raw against the applicable path production
// and stores it verbatim.
func (u *URL) SetEncodedPath(raw []byte) error {
	if err := u.validatePath(raw); err != nil {
		return err
	}
	_, err := u.Copy(partPath, partPath+1, raw)
	return err
}

// encodePathSegments percent-encodes each '/'-delimited segment of
// decoded with PCharCodec, keeping the '/' separators literal.
func encodePathSegments(decoded []byte) []byte {
	var out []byte
	start := 0
	for i := 0; i <= len(decoded); i++ {
		if i == len(decoded) || decoded[i] == '/' {
			seg := decoded[start:i]
			size := PCharCodec.EncodedSize(seg)
			buf := make([]byte, size)
			PCharCodec.Encode(buf, seg)
			out = append(out, buf...)
			if i < len(decoded) {
				out = append(out, '/')
			}
			start = i + 1
		}
	}
	return out
}

// SetPath percent-encodes each segment of decoded and stores it.
func (u *URL) SetPath(decoded []byte) error {
	return u.SetEncodedPath(encodePathSegments(decoded))
}

// EncodedQuery returns the query content without its leading '?', or
// nil if absent.
func (u *URL) EncodedQuery() []byte {
	p := u.GetPart(partQuery)
	if len(p) == 0 {
		return nil
	}
	return cloneBytes(p[1:])
}

// Query percent-decodes the stored query.
func (u *URL) Query() []byte { return percentDecode(u.EncodedQuery()) }

// SetEncodedQuery validates raw's percent-encoding and stores it with
// a leading '?'. Empty raw clears the query.
func (u *URL) SetEncodedQuery(raw []byte) error {
	if len(raw) == 0 {
		u.Clear(partQuery, partQuery+1)
		return nil
	}
	if err := QueryKeyCodec.Validate(raw); err != nil {
		return err
	}
	_, err := u.CopyWithPrefix(partQuery, partQuery+1, []byte{'?'}, raw)
	if err != nil {
		return err
	}
	u.syncCounters()
	return nil
}

// SetQuery percent-encodes decoded as a query value and stores it.
func (u *URL) SetQuery(decoded []byte) error {
	size := QueryValueCodec.EncodedSize(decoded)
	buf := make([]byte, size)
	QueryValueCodec.Encode(buf, decoded)
	return u.SetEncodedQuery(buf)
}

// EncodedFragment returns the fragment content without its leading
// '#', or nil if absent.
func (u *URL) EncodedFragment() []byte {
	p := u.GetPart(partFragment)
	if len(p) == 0 {
		return nil
	}
	return cloneBytes(p[1:])
}

// Fragment percent-decodes the stored fragment.
func (u *URL) Fragment() []byte { return percentDecode(u.EncodedFragment()) }

// SetEncodedFragment validates raw's percent-encoding and stores it
// with a leading '#'. Empty raw clears the fragment.
func (u *URL) SetEncodedFragment(raw []byte) error {
	if len(raw) == 0 {
		u.Clear(partFragment, partFragment+1)
		return nil
	}
	if err := FragmentCodec.Validate(raw); err != nil {
		return err
	}
	_, err := u.CopyWithPrefix(partFragment, partFragment+1, []byte{'#'}, raw)
	return err
}

// SetFragment percent-encodes decoded as a fragment and stores it.
func (u *URL) SetFragment(decoded []byte) error {
	size := FragmentCodec.EncodedSize(decoded)
	buf := make([]byte, size)
	FragmentCodec.Encode(buf, decoded)
	return u.SetEncodedFragment(buf)
}
