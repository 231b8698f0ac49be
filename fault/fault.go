// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised               = ProcessError("already initialised")
	CertificateFileAlreadyExists     = ExistsError("certificate file already exists")
	DataUnavailable                  = NotFoundError("data unavailable")
	FingerprintTooLong               = InvalidError("fingerprint too long")
	InsufficientFunds                = InvalidError("insufficient funds")
	InvalidCount                     = InvalidError("invalid count")
	InvalidCursor                    = InvalidError("invalid cursor")
	InvalidIpAddress                 = InvalidError("invalid ip Address")
	InvalidNetwork                   = InvalidError("invalid network")
	InvalidPrincipalChecksum         = InvalidError("invalid principal checksum")
	InvalidPrincipalLength           = InvalidError("invalid principal length")
	InvalidPrincipalVariant          = InvalidError("invalid principal variant")
	InvalidQuantity                  = InvalidError("invalid quantity")
	KeyFileAlreadyExists             = ExistsError("key file already exists")
	MissingParameters                = InvalidError("missing parameters")
	NotAvailableDuringInitialisation = InvalidError("not available during initialisation")
	NotFound                         = NotFoundError("not found")
	NotInitialised                   = ProcessError("not initialised")
	NotRegistered                    = NotFoundError("not registered")
	PriceMismatch                    = InvalidError("price mismatch")
	RateLimiting                     = ProcessError("rate limiting")
	SupplyMismatch                   = ProcessError("supply mismatch")
	TransactionAlreadyInUse          = ProcessError("transaction already in use")
	Unauthorized                     = InvalidError("unauthorized")
	WrongNetworkForPrincipal         = InvalidError("wrong network for principal")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
