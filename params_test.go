package rfc3986

import "testing"

func TestQueryParamsIterateValues(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("?a=1&b=&c")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if u.NParam != 3 {
		t.Fatalf("NParam = %d, want 3", u.NParam)
	}
	type kv struct {
		key   string
		value string
		has   bool
	}
	var got []kv
	for p := u.QueryBegin(); !p.Equal(u.QueryEnd()); p = p.Next() {
		k, v := p.Value()
		got = append(got, kv{string(k), string(v), v != nil})
	}
	want := []kv{{"a", "1", true}, {"b", "", true}, {"c", "", false}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("param %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestQueryParamLookups(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("?a=1&a=2&b=3")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if !u.ContainsParam([]byte("a")) {
		t.Fatalf("expected ContainsParam(a)")
	}
	if n := u.CountParam([]byte("a")); n != 2 {
		t.Fatalf("CountParam(a) = %d, want 2", n)
	}
	v, has, found := u.GetParam([]byte("b"))
	if !found || !has || string(v) != "3" {
		t.Fatalf("GetParam(b) = %q has=%v found=%v, want 3/true/true", v, has, found)
	}
	if u.ContainsParam([]byte("z")) {
		t.Fatalf("did not expect ContainsParam(z)")
	}
}

func TestInsertParamAtFrontFixesSeparators(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("?a=1")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	if _, err := u.InsertParamEncoded(u.QueryBegin(), []byte("z"), []byte("9"), true); err != nil {
		t.Fatalf("InsertParamEncoded: %s", err)
	}
	if got := string(u.EncodedURL()); got != "?z=9&a=1" {
		t.Fatalf("EncodedURL = %q, want ?z=9&a=1", got)
	}
	if u.NParam != 2 {
		t.Fatalf("NParam = %d, want 2", u.NParam)
	}
}

func TestEraseParamsReinstatesLeadingQuestionMark(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("?a=1&b=2")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	first := u.QueryBegin()
	second := first.Next()
	if err := u.EraseParams(first, second); err != nil {
		t.Fatalf("EraseParams: %s", err)
	}
	if got := string(u.EncodedURL()); got != "?b=2" {
		t.Fatalf("EncodedURL after erase = %q, want ?b=2", got)
	}
	if u.NParam != 1 {
		t.Fatalf("NParam after erase = %d, want 1", u.NParam)
	}
}

func TestReplaceParamPreservesSeparatorAndCount(t *testing.T) {
	u := NewURL(nil)
	if err := u.SetEncodedURL([]byte("?a=1&b=2")); err != nil {
		t.Fatalf("SetEncodedURL: %s", err)
	}
	second := u.QueryBegin().Next()
	if _, err := u.ReplaceParam(second, []byte("b"), []byte("99"), true); err != nil {
		t.Fatalf("ReplaceParam: %s", err)
	}
	if got := string(u.EncodedURL()); got != "?a=1&b=99" {
		t.Fatalf("EncodedURL after replace = %q, want ?a=1&b=99", got)
	}
	if u.NParam != 2 {
		t.Fatalf("NParam after replace = %d, want 2", u.NParam)
	}
}
