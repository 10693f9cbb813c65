package goToken

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// CompressionStrategy selects the payload transform applied before signing.
// The zero value is [CompressionDeflate], matching the default applied when
// no strategy is configured.
type CompressionStrategy uint8

const (
	// CompressionDeflate is an exported constant or variable used by the token repositories.
	CompressionDeflate CompressionStrategy = iota
	// CompressionNone is an exported constant or variable used by the token repositories.
	CompressionNone
	// CompressionGzip is an exported constant or variable used by the token repositories.
	CompressionGzip

	compressionStrategyCount
)

// Codec compresses a token payload before signing and reverses the transform
// on verification. The name is written into the token's zip header.
type Codec interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CodecResolver maps the zip header of an incoming token to a [Codec].
// Implement it to accept compression schemes beyond the built-in set.
type CodecResolver interface {
	Resolve(name string) (Codec, error)
}

// Payloads are small claim sets; anything inflating past this is hostile.
const maxInflatedBytes = 1 << 20

// DeflateCodec is the default [Codec], using raw DEFLATE with the standard
// "DEF" zip header value.
type DeflateCodec struct{}

// Name describes the name operation and its observable behavior.
func (DeflateCodec) Name() string { return "DEF" }

// Compress describes the compress operation and its observable behavior.
func (DeflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress describes the decompress operation and its observable behavior.
func (DeflateCodec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return readInflated(r)
}

// GzipCodec is an alternative [Codec] using gzip framing with the "GZIP" zip
// header value.
type GzipCodec struct{}

// Name describes the name operation and its observable behavior.
func (GzipCodec) Name() string { return "GZIP" }

// Compress describes the compress operation and its observable behavior.
func (GzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress describes the decompress operation and its observable behavior.
func (GzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readInflated(r)
}

func readInflated(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInflatedBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInflatedBytes {
		return nil, errors.New("decompressed payload exceeds size limit")
	}
	return data, nil
}

type builtinResolver struct{}

func (builtinResolver) Resolve(name string) (Codec, error) {
	switch name {
	case "DEF":
		return DeflateCodec{}, nil
	case "GZIP":
		return GzipCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", name)
	}
}

func codecFor(strategy CompressionStrategy) (Codec, error) {
	switch strategy {
	case CompressionDeflate:
		return DeflateCodec{}, nil
	case CompressionNone:
		return nil, nil
	case CompressionGzip:
		return GzipCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression strategy %d", strategy)
	}
}
