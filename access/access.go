// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - purchased access grants
//
// a grant records that a researcher has bought access to one owner's
// data record.  grants are never revoked and repeat purchases are
// absorbed without effect.
package access

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/storage"
)

// globals for this module
type accessData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	accessGrants storage.Handle

	// set once during initialise
	initialised bool
}

// global data
var globalData accessData

// Initialise - setup the grant store
func Initialise(accessGrants storage.Handle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("access")
	globalData.log.Info("starting…")

	globalData.accessGrants = accessGrants
	globalData.initialised = true
	return nil
}

// Finalise - shutdown the grant store
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.accessGrants = nil
	globalData.initialised = false
	return nil
}

// Has - committed grant state, false when unknown
func Has(researcher principal.Principal, owner principal.Principal) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return false
	}
	return globalData.accessGrants.Has(grantKey(researcher, owner))
}

// Grant - record access of a researcher to an owner's data
//
// idempotent; only called from the purchase path
func Grant(trx storage.Transaction, researcher principal.Principal, owner principal.Principal) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	trx.Put(globalData.accessGrants, grantKey(researcher, owner), []byte{0x01})
	return nil
}

func grantKey(researcher principal.Principal, owner principal.Principal) []byte {
	return append(researcher.Bytes(), owner.Bytes()...)
}
