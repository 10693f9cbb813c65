package goToken

import "errors"

// TokenValidator is the surface the authentication bridge consumes: a
// repository with its keys and expiry policy already bound. Obtain one from
// the Bind method of any repository.
type TokenValidator interface {
	ValidateToken(token string) (bool, error)
	TokenClaims(token string) (Claims, error)
}

// Account is the principal/credentials pair returned by a
// [CredentialProvider] for a token's subject.
type Account struct {
	Principal   string
	Credentials string
}

// CredentialProvider is the delegate credential lookup supplied by the
// environment. goToken never performs the lookup itself; it only gates
// progression on the token validity result.
type CredentialProvider interface {
	FindBySubject(subject string) (Account, error)
}

// Realm bridges token verification to an external credential store. It
// surfaces [ErrAuthentication] and [ErrInvalidToken] as a failed
// authentication attempt without distinguishing sub-kinds.
type Realm struct {
	validator TokenValidator
	provider  CredentialProvider
}

// NewRealm describes the newrealm operation and its observable behavior.
//
// NewRealm may return an error when input validation, dependency calls, or security checks fail.
// NewRealm does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRealm(validator TokenValidator, provider CredentialProvider) (*Realm, error) {
	if validator == nil {
		return nil, errors.New("realm requires a token validator")
	}
	if provider == nil {
		return nil, errors.New("realm requires a credential provider")
	}
	return &Realm{validator: validator, provider: provider}, nil
}

// Authenticate resolves the token's subject, looks up the delegate account,
// and admits it only when the token validates. Any failure means the token
// must be treated as untrusted.
func (r *Realm) Authenticate(token string) (*Account, error) {
	claims, err := r.validator.TokenClaims(token)
	if err != nil {
		return nil, err
	}

	account, err := r.provider.FindBySubject(claims.Subject)
	if err != nil {
		return nil, err
	}

	ok, err := r.validator.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthentication
	}
	return &account, nil
}
