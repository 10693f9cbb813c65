// Package jose implements the compact serialization boundary for signed
// tokens: header.payload.signature with base64url raw segments. Nothing
// outside this package touches segment structure.
package jose

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Header is the protected header of a signed compact token.
type Header struct {
	Algorithm   string `json:"alg"`
	Type        string `json:"typ,omitempty"`
	Compression string `json:"zip,omitempty"`
}

// Parsed is the decoded form of a compact token. Payload is the raw payload
// segment, still compressed when the header carries a zip value. Signature
// verification runs against SigningInput.
type Parsed struct {
	Header       Header
	SigningInput string
	Payload      []byte
	Signature    []byte
}

// Serialize signs the header and payload with the given method and key and
// returns the compact form.
func Serialize(header Header, payload []byte, method jwt.SigningMethod, key any) (string, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	signingInput := segment(headerJSON) + "." + segment(payload)
	signature, err := method.Sign(signingInput, key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	return signingInput + "." + segment(signature), nil
}

// Parse splits and decodes a compact token without verifying anything.
func Parse(token string) (*Parsed, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("compact token must have 3 segments, got %d", len(parts))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("decode header segment: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload segment: %w", err)
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("decode signature segment: %w", err)
	}

	return &Parsed{
		Header:       header,
		SigningInput: parts[0] + "." + parts[1],
		Payload:      payload,
		Signature:    signature,
	}, nil
}

func segment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
