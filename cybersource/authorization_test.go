package cybersource

import "testing"

func TestAuthorizationRoundTrip(t *testing.T) {
	cases := []struct {
		order, request, token string
		encoded               string
	}{
		{"X1", "R1", "T1", "X1;R1;T1"},
		{"X1", "", "", "X1"},
		{"", "R1", "", ";R1"},
		{"X1", "R1", "", "X1;R1"},
		{"", "", "", ""},
	}
	for _, c := range cases {
		encoded := EncodeAuthorization(c.order, c.request, c.token)
		if encoded != c.encoded {
			t.Fatalf("encode(%q,%q,%q) got %q want %q", c.order, c.request, c.token, encoded, c.encoded)
		}
		order, request, token := DecodeAuthorization(encoded)
		if order != c.order || request != c.request || token != c.token {
			t.Fatalf("decode(%q) got (%q,%q,%q) want (%q,%q,%q)",
				encoded, order, request, token, c.order, c.request, c.token)
		}
	}
}

func TestDecodeAuthorization_MissingTrailingParts(t *testing.T) {
	order, request, token := DecodeAuthorization("X1;R1")
	if order != "X1" || request != "R1" || token != "" {
		t.Fatalf("got (%q,%q,%q)", order, request, token)
	}
}
