// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package principal - opaque caller identity
//
// A principal is the unit of ownership and authorisation throughout
// the marketplace.  It carries no key material: signature checking
// happens before an operation reaches this daemon, so two principals
// are simply equal or not equal.
//
// binary form: variant byte ++ 32 byte identifier
// text form:   Base58(variant ++ identifier ++ checksum)
// checksum:    first 4 bytes of SHA3-256(variant ++ identifier)
package principal

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/fault"
)

// miscellaneous constants
const (
	IdentifierLength = 32
	checksumLength   = 4
	variantLength    = 1

	// bits in the variant byte starting from LSB
	principalCode = 0x01
	testCode      = 0x02
)

// Principal - an opaque account identity, compared by equality only
type Principal struct {
	variant    byte
	identifier [IdentifierLength]byte
}

// FromIdentifier - build a principal from a raw 32 byte identifier
func FromIdentifier(testnet bool, identifier []byte) (Principal, error) {
	if IdentifierLength != len(identifier) {
		return Principal{}, fault.InvalidPrincipalLength
	}

	variant := byte(principalCode)
	if testnet {
		variant |= testCode
	}

	p := Principal{
		variant: variant,
	}
	copy(p.identifier[:], identifier)
	return p, nil
}

// FromBase58 - convert a Base58 encoded string to a principal
func FromBase58(principalBase58Encoded string) (Principal, error) {
	decoded, err := base58.Decode(principalBase58Encoded)
	if nil != err {
		return Principal{}, fault.InvalidPrincipalLength
	}

	if variantLength+IdentifierLength+checksumLength != len(decoded) {
		return Principal{}, fault.InvalidPrincipalLength
	}

	variant := decoded[0]
	if principalCode != variant&principalCode {
		return Principal{}, fault.InvalidPrincipalVariant
	}
	if 0 != variant&^(principalCode|testCode) {
		return Principal{}, fault.InvalidPrincipalVariant
	}

	payload := decoded[:variantLength+IdentifierLength]
	digest := sha3.Sum256(payload)
	if !bytes.Equal(digest[:checksumLength], decoded[variantLength+IdentifierLength:]) {
		return Principal{}, fault.InvalidPrincipalChecksum
	}

	p := Principal{
		variant: variant,
	}
	copy(p.identifier[:], decoded[variantLength:])
	return p, nil
}

// Bytes - binary form, used as the database key for this principal
func (p Principal) Bytes() []byte {
	b := make([]byte, variantLength+IdentifierLength)
	b[0] = p.variant
	copy(b[variantLength:], p.identifier[:])
	return b
}

// String - Base58 string with checksum
func (p Principal) String() string {
	payload := p.Bytes()
	digest := sha3.Sum256(payload)
	payload = append(payload, digest[:checksumLength]...)
	return base58.Encode(payload)
}

// MarshalText - for JSON and configuration use
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText - decode and verify the checksummed text form
func (p *Principal) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*p = decoded
	return nil
}

// IsTesting - true if this principal belongs to a test network
func (p Principal) IsTesting() bool {
	return 0 != p.variant&testCode
}

// IsZero - true for the uninitialised principal
//
// a zero principal is never valid as a caller or a target
func (p Principal) IsZero() bool {
	return 0 == p.variant
}
