package goToken

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Registered claim names written into the token payload, plus the two custom
// claims carried by every goToken payload.
const (
	claimTokenID     = "jti"
	claimSubject     = "sub"
	claimIssuer      = "iss"
	claimAudience    = "aud"
	claimIssuedAt    = "iat"
	claimNotBefore   = "nbf"
	claimExpiration  = "exp"
	claimRoles       = "roles"
	claimPermissions = "perms"
)

// Claims is the identity payload carried by a token: who it was issued to,
// who issued it, who may accept it, when it is valid, and what the holder is
// allowed to do.
//
// A Claims value is constructed once, either by [ClaimsBuilder.Build] at
// issuance time or by a repository when decoding a verified token, and is
// treated as immutable afterwards. NotBefore and Expiration are optional;
// an absent bound is unconstrained, never an automatic pass or fail.
type Claims struct {
	TokenID     string
	Subject     string
	Issuer      string
	Audience    []string
	IssuedAt    time.Time
	NotBefore   *time.Time
	Expiration  *time.Time
	Roles       string
	Permissions string

	// Extra holds caller-supplied claims outside the registered set. Keys
	// colliding with registered names are overwritten by the typed fields
	// during serialization.
	Extra map[string]any
}

// MarshalJSON renders the claim set as a flat JWT payload object using the
// registered names (jti, sub, iss, aud, iat, nbf, exp) plus roles, perms,
// and any extra entries. Timestamps serialize as NumericDate seconds.
func (c Claims) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(c.Extra)+9)
	for k, v := range c.Extra {
		payload[k] = v
	}
	if c.TokenID != "" {
		payload[claimTokenID] = c.TokenID
	}
	payload[claimSubject] = c.Subject
	if c.Issuer != "" {
		payload[claimIssuer] = c.Issuer
	}
	switch len(c.Audience) {
	case 0:
	case 1:
		payload[claimAudience] = c.Audience[0]
	default:
		payload[claimAudience] = c.Audience
	}
	payload[claimIssuedAt] = jwt.NewNumericDate(c.IssuedAt)
	if c.NotBefore != nil {
		payload[claimNotBefore] = jwt.NewNumericDate(*c.NotBefore)
	}
	if c.Expiration != nil {
		payload[claimExpiration] = jwt.NewNumericDate(*c.Expiration)
	}
	if c.Roles != "" {
		payload[claimRoles] = c.Roles
	}
	if c.Permissions != "" {
		payload[claimPermissions] = c.Permissions
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes a JWT payload object. The audience claim is accepted
// in both string and array form; unknown keys are collected into Extra.
func (c *Claims) UnmarshalJSON(data []byte) error {
	var registered struct {
		TokenID     string           `json:"jti"`
		Subject     string           `json:"sub"`
		Issuer      string           `json:"iss"`
		Audience    jwt.ClaimStrings `json:"aud"`
		IssuedAt    *jwt.NumericDate `json:"iat"`
		NotBefore   *jwt.NumericDate `json:"nbf"`
		Expiration  *jwt.NumericDate `json:"exp"`
		Roles       string           `json:"roles"`
		Permissions string           `json:"perms"`
	}
	if err := json.Unmarshal(data, &registered); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, known := range []string{
		claimTokenID, claimSubject, claimIssuer, claimAudience,
		claimIssuedAt, claimNotBefore, claimExpiration,
		claimRoles, claimPermissions,
	} {
		delete(raw, known)
	}

	c.TokenID = registered.TokenID
	c.Subject = registered.Subject
	c.Issuer = registered.Issuer
	c.Audience = nil
	if len(registered.Audience) > 0 {
		c.Audience = append([]string(nil), registered.Audience...)
	}
	c.IssuedAt = time.Time{}
	if registered.IssuedAt != nil {
		c.IssuedAt = registered.IssuedAt.Time
	}
	c.NotBefore = nil
	if registered.NotBefore != nil {
		nbf := registered.NotBefore.Time
		c.NotBefore = &nbf
	}
	c.Expiration = nil
	if registered.Expiration != nil {
		exp := registered.Expiration.Time
		c.Expiration = &exp
	}
	c.Roles = registered.Roles
	c.Permissions = registered.Permissions
	c.Extra = nil
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// validate is called by the repositories before signing.
func (c Claims) validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return errors.New("claims subject is required")
	}
	if c.NotBefore != nil && c.Expiration != nil && !c.NotBefore.Before(*c.Expiration) {
		return errors.New("notBefore must precede expiration")
	}
	return nil
}
