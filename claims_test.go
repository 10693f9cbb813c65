package goToken

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var testNow = time.Unix(1_700_000_000, 0).UTC()

func newFixedBuilder(opts ...ClaimsBuilderOption) *ClaimsBuilder {
	opts = append([]ClaimsBuilderOption{WithBuilderClock(clockwork.NewFakeClockAt(testNow))}, opts...)
	return NewClaimsBuilder(opts...)
}

func TestBuildSetsValidityWindow(t *testing.T) {
	claims, err := newFixedBuilder().Build(ClaimsInput{
		Subject:       "alice",
		PeriodSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	if !claims.IssuedAt.Equal(testNow) {
		t.Fatalf("issuedAt = %v, want %v", claims.IssuedAt, testNow)
	}
	if claims.NotBefore == nil || !claims.NotBefore.Equal(testNow) {
		t.Fatalf("notBefore = %v, want %v", claims.NotBefore, testNow)
	}
	want := testNow.Add(time.Hour)
	if claims.Expiration == nil || !claims.Expiration.Equal(want) {
		t.Fatalf("expiration = %v, want %v", claims.Expiration, want)
	}
}

func TestBuildNegativePeriodLeavesBoundsUnset(t *testing.T) {
	claims, err := newFixedBuilder().Build(ClaimsInput{
		Subject:       "alice",
		PeriodSeconds: -1,
	})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	if claims.NotBefore != nil || claims.Expiration != nil {
		t.Fatalf("expected unset bounds, got nbf=%v exp=%v", claims.NotBefore, claims.Expiration)
	}
	if !claims.IssuedAt.Equal(testNow) {
		t.Fatalf("issuedAt = %v, want %v", claims.IssuedAt, testNow)
	}
}

func TestBuildOmitsBlankOptionalFields(t *testing.T) {
	claims, err := newFixedBuilder().Build(ClaimsInput{
		ID:            "   ",
		Subject:       "alice",
		Issuer:        "  ",
		Audience:      []string{"", "  ", "api"},
		PeriodSeconds: 60,
	})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	if claims.TokenID != "" {
		t.Fatalf("expected blank token id to be omitted, got %q", claims.TokenID)
	}
	if claims.Issuer != "" {
		t.Fatalf("expected blank issuer to be omitted, got %q", claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != "api" {
		t.Fatalf("audience = %v, want [api]", claims.Audience)
	}
}

func TestBuildRequiresSubject(t *testing.T) {
	if _, err := newFixedBuilder().Build(ClaimsInput{Subject: "  "}); err == nil {
		t.Fatal("expected blank subject to be rejected")
	}
}

func TestBuildGeneratesIDOnlyWhenConfigured(t *testing.T) {
	withGen, err := newFixedBuilder(WithIDGenerator(UUIDGenerator{})).Build(ClaimsInput{Subject: "alice", PeriodSeconds: 60})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	if withGen.TokenID == "" {
		t.Fatal("expected generated token id")
	}

	explicit, err := newFixedBuilder(WithIDGenerator(UUIDGenerator{})).Build(ClaimsInput{ID: "tok-1", Subject: "alice", PeriodSeconds: 60})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	if explicit.TokenID != "tok-1" {
		t.Fatalf("expected caller-supplied id to win, got %q", explicit.TokenID)
	}
}

func TestClaimsJSONRoundTrip(t *testing.T) {
	claims, err := newFixedBuilder().Build(ClaimsInput{
		ID:            "tok-1",
		Subject:       "alice",
		Issuer:        "goToken",
		Audience:      []string{"api", "web"},
		Roles:         "admin,user",
		Permissions:   "read,write",
		PeriodSeconds: 3600,
		Extra:         map[string]any{"dept": "platform"},
	})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}

	data, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}

	var decoded Claims
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}

	if decoded.TokenID != "tok-1" || decoded.Subject != "alice" || decoded.Issuer != "goToken" {
		t.Fatalf("identity fields lost: %+v", decoded)
	}
	if len(decoded.Audience) != 2 || decoded.Audience[0] != "api" || decoded.Audience[1] != "web" {
		t.Fatalf("audience = %v, want [api web]", decoded.Audience)
	}
	if decoded.Roles != "admin,user" || decoded.Permissions != "read,write" {
		t.Fatalf("roles/perms lost: %+v", decoded)
	}
	if decoded.IssuedAt.Unix() != claims.IssuedAt.Unix() {
		t.Fatalf("issuedAt = %v, want %v", decoded.IssuedAt, claims.IssuedAt)
	}
	if decoded.Expiration == nil || decoded.Expiration.Unix() != claims.Expiration.Unix() {
		t.Fatalf("expiration = %v, want %v", decoded.Expiration, claims.Expiration)
	}
	if got, ok := decoded.Extra["dept"].(string); !ok || got != "platform" {
		t.Fatalf("extra claim dept = %v, want platform", decoded.Extra["dept"])
	}
}

func TestClaimsSingleAudienceEncodesAsString(t *testing.T) {
	claims, err := newFixedBuilder().Build(ClaimsInput{Subject: "alice", Audience: []string{"api"}, PeriodSeconds: 60})
	if err != nil {
		t.Fatalf("build claims: %v", err)
	}
	data, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["aud"].(string); !ok {
		t.Fatalf("expected single audience as string, got %T", raw["aud"])
	}

	var decoded Claims
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}
	if len(decoded.Audience) != 1 || decoded.Audience[0] != "api" {
		t.Fatalf("audience = %v, want [api]", decoded.Audience)
	}
}

func TestClaimsValidateRejectsInvertedWindow(t *testing.T) {
	nbf := testNow.Add(time.Hour)
	exp := testNow
	claims := Claims{Subject: "alice", IssuedAt: testNow, NotBefore: &nbf, Expiration: &exp}
	if err := claims.validate(); err == nil {
		t.Fatal("expected inverted window to be rejected")
	}
}
