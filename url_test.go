package rfc3986

import (
	"bytes"
	"testing"
)

func TestURLSetSchemeAndNormalize(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetScheme([]byte("HTTPS")); err != nil {
		t.Fatalf("SetScheme: %s", err)
	}
	u.NormalizeScheme()
	if got := string(u.EncodedURL()); got != "https:" {
		t.Fatalf("EncodedURL = %q, want %q", got, "https:")
	}
}

func TestURLSetEncodedURLFullRoundTrip(t *testing.T) {
	u := NewURL(nil)
	raw := "http://a:b@x.y:8080/p/q?k=v#f"
	if err := u.SetEncodedURL([]byte(raw)); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	cases := []struct {
		name string
		got  []byte
		want string
	}{
		{"user", u.EncodedUser(), "a"},
		{"password", u.EncodedPassword(), "b"},
		{"host", u.EncodedHost(), "x.y"},
		{"port", u.EncodedPort(), "8080"},
		{"path", u.EncodedPath(), "/p/q"},
		{"query", u.EncodedQuery(), "k=v"},
		{"fragment", u.EncodedFragment(), "f"},
	}
	for _, c := range cases {
		if string(c.got) != c.want {
			t.Fatalf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if u.NSeg != 2 {
		t.Fatalf("NSeg = %d, want 2", u.NSeg)
	}
	if u.NParam != 1 {
		t.Fatalf("NParam = %d, want 1", u.NParam)
	}
	if got := string(u.EncodedURL()); got != raw {
		t.Fatalf("EncodedURL = %q, want %q", got, raw)
	}
}

func TestURLUserPasswordClearSequence(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("http://a:b@x.y:8080/p/q?k=v#f")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if err := u.SetUser(nil); err != nil {
		t.Fatalf("SetUser(\"\"): %s", err)
	}
	want := "http://:b@x.y:8080/p/q?k=v#f"
	if got := string(u.EncodedURL()); got != want {
		t.Fatalf("after SetUser(\"\"): %q, want %q", got, want)
	}
	if err := u.SetPassword(nil); err != nil {
		t.Fatalf("SetPassword(\"\"): %s", err)
	}
	want = "http://x.y:8080/p/q?k=v#f"
	if got := string(u.EncodedURL()); got != want {
		t.Fatalf("after SetPassword(\"\"): %q, want %q", got, want)
	}
}

func TestURLSetEncodedPathAppliesPathAbempty(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("http://x/")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if err := u.SetEncodedPath([]byte("/a")); err != nil {
		t.Fatalf("SetEncodedPath: %s", err)
	}
	if u.NSeg != 1 {
		t.Fatalf("NSeg = %d, want 1", u.NSeg)
	}
	if got := string(u.EncodedPath()); got != "/a" {
		t.Fatalf("EncodedPath = %q, want /a", got)
	}
}

func TestURLQueryDecodedRoundTrip(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetQuery([]byte("a b=c/d")); err != nil {
		t.Fatalf("SetQuery: %s", err)
	}
	if !bytes.Equal(u.Query(), []byte("a b=c/d")) {
		t.Fatalf("Query() = %q, want %q", u.Query(), "a b=c/d")
	}
	if u.NParam != 1 {
		t.Fatalf("NParam = %d, want 1", u.NParam)
	}
}

func TestURLSetHostEmptyRemovesAuthorityWithoutPort(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetHost([]byte("example.com")); err != nil {
		t.Fatalf("SetHost: %s", err)
	}
	if !u.HasAuthority() {
		t.Fatalf("expected authority present after SetHost")
	}
	if err := u.SetHost(nil); err != nil {
		t.Fatalf("SetHost(\"\"): %s", err)
	}
	if u.HasAuthority() {
		t.Fatalf("expected authority removed after clearing the only host")
	}
}

func TestURLSetPortIntegerRoundTrip(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetHost([]byte("example.com")); err != nil {
		t.Fatalf("SetHost: %s", err)
	}
	if err := u.SetPort(8080); err != nil {
		t.Fatalf("SetPort: %s", err)
	}
	n, err := u.Port()
	if err != nil {
		t.Fatalf("Port: %s", err)
	}
	if n != 8080 {
		t.Fatalf("Port() = %d, want 8080", n)
	}
}

func TestURLSetHostIPv6LiteralKeepsBrackets(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetHost([]byte("2001:db8::1")); err != nil {
		t.Fatalf("SetHost: %s", err)
	}
	want := "//[2001:db8::1]"
	if got := string(u.EncodedURL()); got != want {
		t.Fatalf("EncodedURL = %q, want %q", got, want)
	}
	if u.HostKind != HostIPv6 {
		t.Fatalf("HostKind = %v, want HostIPv6", u.HostKind)
	}

	u2 := NewURL(nil)
	if err := u2.SetEncodedURL(u.EncodedURL()); err != nil {
		t.Fatalf("round-trip SetEncodedURL: %s", err)
	}
	mustEqual(t, u2.EncodedHost(), []byte("[2001:db8::1]"), "host after round trip")
}

func TestURLEncodedOrigin(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("http://x.y/p/q?k=v#f")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if got := string(u.EncodedOrigin()); got != "http://x.y/p/q" {
		t.Fatalf("EncodedOrigin = %q, want http://x.y/p/q", got)
	}
}

func TestURLResetClearsAllParts(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("http://x.y/p/q?k=v#f")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	u.Reset()
	if got := string(u.EncodedURL()); got != "" {
		t.Fatalf("EncodedURL after Reset = %q, want empty", got)
	}
	if u.NSeg != 0 || u.NParam != 0 || u.HostKind != HostNone {
		t.Fatalf("counters not reset: NSeg=%d NParam=%d HostKind=%v", u.NSeg, u.NParam, u.HostKind)
	}
}
