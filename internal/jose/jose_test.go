package jose

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestSerializeParseRoundTrip(t *testing.T) {
	header := Header{Algorithm: "HS256", Type: "JWT", Compression: "DEF"}
	payload := []byte(`{"sub":"alice"}`)

	token, err := Serialize(header, payload, jwt.SigningMethodHS256, secret)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected 3 segments, got %q", token)
	}

	parsed, err := Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Header != header {
		t.Fatalf("header = %+v, want %+v", parsed.Header, header)
	}
	if string(parsed.Payload) != string(payload) {
		t.Fatalf("payload = %q, want %q", parsed.Payload, payload)
	}
	if err := jwt.SigningMethodHS256.Verify(parsed.SigningInput, parsed.Signature, secret); err != nil {
		t.Fatalf("signature does not verify over SigningInput: %v", err)
	}
}

func TestParseRejectsWrongSegmentCount(t *testing.T) {
	for _, token := range []string{"", "a", "a.b", "a.b.c.d", "a.b.c.d.e"} {
		if _, err := Parse(token); err == nil {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}

func TestParseRejectsBadBase64(t *testing.T) {
	header := Header{Algorithm: "HS256"}
	token, err := Serialize(header, []byte(`{}`), jwt.SigningMethodHS256, secret)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	parts := strings.Split(token, ".")

	for i := range parts {
		mutated := make([]string, 3)
		copy(mutated, parts)
		mutated[i] = "!!!"
		if _, err := Parse(strings.Join(mutated, ".")); err == nil {
			t.Fatalf("expected corrupt segment %d to be rejected", i)
		}
	}
}

func TestParseRejectsNonJSONHeader(t *testing.T) {
	// "bm90anNvbg" is base64url for "notjson".
	if _, err := Parse("bm90anNvbg.e30.c2ln"); err == nil {
		t.Fatal("expected non-JSON header to be rejected")
	}
}
