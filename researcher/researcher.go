// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package researcher - registration and verification of buyers
//
// registration is open and idempotent; verification is an
// owner-only endorsement and is required before purchasing.
package researcher

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/storage"
)

// bits of the status byte
const (
	registeredFlag = 0x01
	verifiedFlag   = 0x02
)

// globals for this module
type researcherData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	researchers storage.Handle
	owner       principal.Principal

	// set once during initialise
	initialised bool
}

// global data
var globalData researcherData

// Initialise - setup the researcher registry
func Initialise(researchers storage.Handle, owner principal.Principal) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("researcher")
	globalData.log.Info("starting…")

	globalData.researchers = researchers
	globalData.owner = owner
	globalData.initialised = true
	return nil
}

// Finalise - shutdown the researcher registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.researchers = nil
	globalData.initialised = false
	return nil
}

// Register - mark the caller as a registered researcher
//
// registering an already registered principal is a no-op; an
// existing verification is preserved
func Register(trx storage.Transaction, caller principal.Principal) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	status := statusFromTrx(trx, caller)
	trx.Put(globalData.researchers, caller.Bytes(), []byte{status | registeredFlag})
	return nil
}

// Verify - owner endorsement of a registered researcher
func Verify(trx storage.Transaction, caller principal.Principal, target principal.Principal) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.owner {
		return fault.Unauthorized
	}

	status := statusFromTrx(trx, target)
	if 0 == status&registeredFlag {
		return fault.NotRegistered
	}

	trx.Put(globalData.researchers, target.Bytes(), []byte{status | verifiedFlag})
	return nil
}

// IsRegistered - committed registration state, false when unknown
func IsRegistered(p principal.Principal) bool {
	return 0 != status(p)&registeredFlag
}

// IsVerified - committed verification state, false when unknown
func IsVerified(p principal.Principal) bool {
	return 0 != status(p)&verifiedFlag
}

func status(p principal.Principal) byte {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	packed := globalData.researchers.Get(p.Bytes())
	if nil == packed || 0 == len(packed) {
		return 0
	}
	return packed[0]
}

func statusFromTrx(trx storage.Transaction, p principal.Principal) byte {
	packed := trx.Get(globalData.researchers, p.Bytes())
	if nil == packed || 0 == len(packed) {
		return 0
	}
	return packed[0]
}
