// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the purchase engine
//
// a purchase pays the listed price to the data owner and records an
// access grant, in one storage transaction.  a failed purchase
// leaves every pool exactly as it was.
package market

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/access"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/background"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/ledger"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/researcher"
	"github.com/bitmark-inc/marketd/storage"
)

// globals for background process
type marketData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData marketData

// Initialise - start the purchase engine and its background audit
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("market")
	globalData.log.Info("starting…")

	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&auditor{},
	}

	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - shutdown the purchase engine
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Purchase - buy access to a data owner's record
//
// preconditions are checked in a fixed order, then the payment and
// the grant commit together; on any failure no pool is modified
func Purchase(caller principal.Principal, dataOwner principal.Principal, amount uint64) (uint64, uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, 0, fault.NotInitialised
	}

	if !researcher.IsVerified(caller) {
		return 0, 0, fault.Unauthorized
	}

	record, err := asset.Fetch(dataOwner)
	if nil != err || !record.Available {
		return 0, 0, fault.DataUnavailable
	}

	if amount != record.Price {
		return 0, 0, fault.PriceMismatch
	}

	if ledger.Balance(caller) < amount {
		return 0, 0, fault.InsufficientFunds
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, 0, err
	}

	// a free record still yields a grant, just no payment
	if 0 != amount {
		_, err = ledger.Transfer(trx, caller, dataOwner, amount)
		if nil != err {
			trx.Abort()
			return 0, 0, err
		}
	}

	err = access.Grant(trx, caller, dataOwner)
	if nil != err {
		trx.Abort()
		return 0, 0, err
	}

	err = trx.Commit()
	if nil != err {
		return 0, 0, err
	}

	globalData.log.Infof("purchase: researcher: %s  owner: %s  amount: %d", caller, dataOwner, amount)

	return ledger.Balance(caller), ledger.Balance(dataOwner), nil
}
