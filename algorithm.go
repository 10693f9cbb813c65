package goToken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmFamily defines a public type used by goToken APIs.
//
// AlgorithmFamily instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AlgorithmFamily uint8

const (
	// FamilyHMAC is an exported constant or variable used by the token repositories.
	FamilyHMAC AlgorithmFamily = iota
	// FamilyRSA is an exported constant or variable used by the token repositories.
	FamilyRSA
	// FamilyECDSA is an exported constant or variable used by the token repositories.
	FamilyECDSA
	// FamilyEdDSA is an exported constant or variable used by the token repositories.
	FamilyEdDSA
)

// String describes the string operation and its observable behavior.
func (f AlgorithmFamily) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyEdDSA:
		return "EdDSA"
	default:
		return "unknown"
	}
}

// KeyShape tags the key material a signing algorithm requires: a shared
// symmetric secret, or an asymmetric public/private pair.
type KeyShape uint8

const (
	// ShapeShared is an exported constant or variable used by the token repositories.
	ShapeShared KeyShape = iota
	// ShapeAsymmetric is an exported constant or variable used by the token repositories.
	ShapeAsymmetric
)

// String describes the string operation and its observable behavior.
func (s KeyShape) String() string {
	switch s {
	case ShapeShared:
		return "shared"
	case ShapeAsymmetric:
		return "asymmetric"
	default:
		return "unknown"
	}
}

// Algorithm is a registry entry binding a canonical algorithm name to its
// family, required key shape, and signing strategy.
type Algorithm struct {
	Name   string
	Family AlgorithmFamily
	Shape  KeyShape

	method jwt.SigningMethod
}

// The registry is initialized once at process start from a fixed table and
// is read-only afterwards.
var algorithms = map[string]Algorithm{}

func register(name string, family AlgorithmFamily, shape KeyShape, method jwt.SigningMethod) {
	algorithms[name] = Algorithm{Name: name, Family: family, Shape: shape, method: method}
}

func init() {
	register("HS256", FamilyHMAC, ShapeShared, jwt.SigningMethodHS256)
	register("HS384", FamilyHMAC, ShapeShared, jwt.SigningMethodHS384)
	register("HS512", FamilyHMAC, ShapeShared, jwt.SigningMethodHS512)
	register("RS256", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodRS256)
	register("RS384", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodRS384)
	register("RS512", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodRS512)
	register("PS256", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodPS256)
	register("PS384", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodPS384)
	register("PS512", FamilyRSA, ShapeAsymmetric, jwt.SigningMethodPS512)
	register("ES256", FamilyECDSA, ShapeAsymmetric, jwt.SigningMethodES256)
	register("ES384", FamilyECDSA, ShapeAsymmetric, jwt.SigningMethodES384)
	register("ES512", FamilyECDSA, ShapeAsymmetric, jwt.SigningMethodES512)
	register("EdDSA", FamilyEdDSA, ShapeAsymmetric, jwt.SigningMethodEdDSA)
}

// ResolveAlgorithm looks up an algorithm by its canonical name. The lookup is
// case-sensitive and fails with [ErrUnsupportedAlgorithm] for unknown names.
func ResolveAlgorithm(name string) (Algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// requireShape rejects an algorithm/key-shape mismatch before any
// cryptographic operation runs. A mismatch is a configuration bug, not a
// runtime failure.
func (a Algorithm) requireShape(shape KeyShape) error {
	if a.Shape != shape {
		return fmt.Errorf("%w: %s requires %s key material, got %s", ErrUnsupportedAlgorithm, a.Name, a.Shape, shape)
	}
	return nil
}
