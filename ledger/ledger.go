// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - fungible token balances and total supply
//
// the whole supply is created at genesis for the contract owner; the
// owner may mint more.  balances are unsigned: a transfer is refused
// rather than allowing a balance to go below zero.
package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/genesis"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/storage"
)

// key for the total supply record in the supply pool
var supplyKey = []byte("SUPPLY")

// globals for background process
type ledgerData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	balances storage.Handle
	supply   storage.Handle
	owner    principal.Principal

	// set once during initialise
	initialised bool
}

// global data
var globalData ledgerData

// Initialise - setup the ledger, seeding genesis state when the
// supply record is absent
func Initialise(balances storage.Handle, supply storage.Handle, owner principal.Principal) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.balances = balances
	globalData.supply = supply
	globalData.owner = owner

	_, found := supply.GetN(supplyKey)
	if !found {
		err := supply.Begin()
		if nil != err {
			return err
		}
		supply.PutN(supplyKey, genesis.InitialSupply)
		balances.PutN(owner.Bytes(), genesis.InitialSupply)
		err = supply.Commit()
		if nil != err {
			return err
		}
		globalData.log.Infof("genesis: minted: %d  owner: %s", genesis.InitialSupply, owner)
	}

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.balances = nil
	globalData.supply = nil
	globalData.initialised = false
	return nil
}

// Owner - the contract owner in effect for this ledger
func Owner() principal.Principal {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.owner
}

// Mint - create new tokens for a target principal
//
// only the contract owner may mint; the caller supplies the
// transaction and commits after all checks pass
func Mint(trx storage.Transaction, caller principal.Principal, target principal.Principal, quantity uint64) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if caller != globalData.owner {
		return 0, fault.Unauthorized
	}
	if 0 == quantity {
		return 0, fault.InvalidQuantity
	}

	supply, _ := trx.GetN(globalData.supply, supplyKey)
	if supply+quantity < supply {
		return 0, fault.InvalidQuantity
	}

	balance, _ := trx.GetN(globalData.balances, target.Bytes())

	trx.PutN(globalData.supply, supplyKey, supply+quantity)
	trx.PutN(globalData.balances, target.Bytes(), balance+quantity)

	return balance + quantity, nil
}

// Transfer - move tokens from caller to recipient
//
// a self-transfer is allowed and leaves the balance unchanged
func Transfer(trx storage.Transaction, caller principal.Principal, recipient principal.Principal, quantity uint64) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if 0 == quantity {
		return 0, fault.InvalidQuantity
	}

	balance, _ := trx.GetN(globalData.balances, caller.Bytes())
	if balance < quantity {
		return 0, fault.InsufficientFunds
	}

	if caller == recipient {
		return balance, nil
	}

	recipientBalance, _ := trx.GetN(globalData.balances, recipient.Bytes())

	trx.PutN(globalData.balances, caller.Bytes(), balance-quantity)
	trx.PutN(globalData.balances, recipient.Bytes(), recipientBalance+quantity)

	return balance - quantity, nil
}

// Balance - committed balance of a principal, zero when absent
func Balance(p principal.Principal) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	balance, _ := globalData.balances.GetN(p.Bytes())
	return balance
}

// TotalSupply - committed total of all minted tokens
func TotalSupply() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	supply, _ := globalData.supply.GetN(supplyKey)
	return supply
}

// CheckSupply - verify that the sum of all balances matches the
// recorded total supply
func CheckSupply() error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	sum := uint64(0)
	err := globalData.balances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(value) {
			globalData.log.Errorf("truncated balance record for: %x", key)
			return fault.SupplyMismatch
		}
		sum += binary.BigEndian.Uint64(value)
		return nil
	})
	if nil != err {
		return err
	}

	supply, _ := globalData.supply.GetN(supplyKey)
	if sum != supply {
		globalData.log.Errorf("supply mismatch: balances: %d  supply: %d", sum, supply)
		return fault.SupplyMismatch
	}
	return nil
}
