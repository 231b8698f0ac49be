// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/access"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/genesis"
	"github.com/bitmark-inc/marketd/ledger"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/researcher"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
	"github.com/bitmark-inc/marketd/storage"
)

const databaseFileName = "market-test"

var owner principal.Principal

func removeFiles() {
	os.RemoveAll(databaseFileName + "-market.leveldb")
}

func setup(t *testing.T) {
	fixtures.SetupTestLogger()
	removeFiles()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	owner = genesis.Owner(true)

	err = ledger.Initialise(storage.Pool.Balances, storage.Pool.Supply, owner)
	if nil != err {
		t.Fatalf("ledger initialise error: %s", err)
	}
	err = asset.Initialise(storage.Pool.DataRecords)
	if nil != err {
		t.Fatalf("asset initialise error: %s", err)
	}
	err = researcher.Initialise(storage.Pool.Researchers, owner)
	if nil != err {
		t.Fatalf("researcher initialise error: %s", err)
	}
	err = access.Initialise(storage.Pool.AccessGrants)
	if nil != err {
		t.Fatalf("access initialise error: %s", err)
	}
	err = market.Initialise()
	if nil != err {
		t.Fatalf("market initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	market.Finalise()
	access.Finalise()
	researcher.Finalise()
	asset.Finalise()
	ledger.Finalise()
	storage.Finalise()
	removeFiles()
	fixtures.TeardownTestLogger()
}

// move tokens from the contract owner to a test principal
func fund(t *testing.T, p principal.Principal, quantity uint64) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")
	_, err = ledger.Transfer(trx, owner, p, quantity)
	assert.Nil(t, err, "wrong Transfer")
	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")
}

// register and owner-verify a researcher
func verifiedResearcher(t *testing.T, p principal.Principal) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")
	err = researcher.Register(trx, p)
	assert.Nil(t, err, "wrong Register")
	err = researcher.Verify(trx, owner, p)
	assert.Nil(t, err, "wrong Verify")
	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")
}

// list a data record for sale
func listData(t *testing.T, p principal.Principal, fingerprint string, price uint64) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")
	err = asset.Submit(trx, p, fingerprint, price)
	assert.Nil(t, err, "wrong Submit")
	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")
}

// withdraw a record from sale
func withdraw(t *testing.T, p principal.Principal) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")
	err = asset.SetAvailability(trx, p, false)
	assert.Nil(t, err, "wrong SetAvailability")
	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")
}

// assert that a failed purchase left no traces
func assertUntouched(t *testing.T, buyer principal.Principal, seller principal.Principal, buyerBalance uint64, sellerBalance uint64) {
	assert.Equal(t, buyerBalance, ledger.Balance(buyer), "buyer balance changed")
	assert.Equal(t, sellerBalance, ledger.Balance(seller), "seller balance changed")
	assert.False(t, access.Has(buyer, seller), "grant appeared")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}

func TestPurchase(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 1000)
	verifiedResearcher(t, bob)
	listData(t, alice, "QmHealthData", 250)

	balance, ownerBalance, err := market.Purchase(bob, alice, 250)
	assert.Nil(t, err, "wrong Purchase")
	assert.Equal(t, uint64(750), balance, "wrong researcher balance")
	assert.Equal(t, uint64(250), ownerBalance, "wrong owner balance")

	assert.True(t, access.Has(bob, alice), "missing grant")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}

func TestPurchaseUnverified(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 1000)
	listData(t, alice, "QmHealthData", 250)

	// registered but never verified
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")
	err = researcher.Register(trx, bob)
	assert.Nil(t, err, "wrong Register")
	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")

	_, _, err = market.Purchase(bob, alice, 250)
	assert.Equal(t, fault.Unauthorized, err, "wrong error")
	assertUntouched(t, bob, alice, 1000, 0)

	// completely unknown principal
	_, _, err = market.Purchase(fixtures.Principal("ghost"), alice, 250)
	assert.Equal(t, fault.Unauthorized, err, "wrong error")
}

func TestPurchaseUnavailable(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 1000)
	verifiedResearcher(t, bob)

	// no record at all
	_, _, err := market.Purchase(bob, alice, 250)
	assert.Equal(t, fault.DataUnavailable, err, "wrong error")

	// record withdrawn from sale
	listData(t, alice, "QmHealthData", 250)
	withdraw(t, alice)

	_, _, err = market.Purchase(bob, alice, 250)
	assert.Equal(t, fault.DataUnavailable, err, "wrong error")
	assertUntouched(t, bob, alice, 1000, 0)
}

func TestPurchasePriceMismatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 1000)
	verifiedResearcher(t, bob)
	listData(t, alice, "QmHealthData", 250)

	_, _, err := market.Purchase(bob, alice, 200)
	assert.Equal(t, fault.PriceMismatch, err, "wrong error")

	_, _, err = market.Purchase(bob, alice, 300)
	assert.Equal(t, fault.PriceMismatch, err, "wrong error")

	assertUntouched(t, bob, alice, 1000, 0)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 100)
	verifiedResearcher(t, bob)
	listData(t, alice, "QmHealthData", 250)

	_, _, err := market.Purchase(bob, alice, 250)
	assert.Equal(t, fault.InsufficientFunds, err, "wrong error")
	assertUntouched(t, bob, alice, 100, 0)
}

func TestPurchaseFreeRecord(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	verifiedResearcher(t, bob)
	listData(t, alice, "QmFreeData", 0)

	balance, ownerBalance, err := market.Purchase(bob, alice, 0)
	assert.Nil(t, err, "wrong Purchase")
	assert.Equal(t, uint64(0), balance, "wrong researcher balance")
	assert.Equal(t, uint64(0), ownerBalance, "wrong owner balance")

	assert.True(t, access.Has(bob, alice), "missing grant")
}

func TestRepeatPurchase(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	fund(t, bob, 1000)
	verifiedResearcher(t, bob)
	listData(t, alice, "QmHealthData", 250)

	_, _, err := market.Purchase(bob, alice, 250)
	assert.Nil(t, err, "wrong Purchase")

	// buying again pays again, the grant is unchanged
	balance, ownerBalance, err := market.Purchase(bob, alice, 250)
	assert.Nil(t, err, "wrong repeat Purchase")
	assert.Equal(t, uint64(500), balance, "wrong researcher balance")
	assert.Equal(t, uint64(500), ownerBalance, "wrong owner balance")
	assert.True(t, access.Has(bob, alice), "missing grant")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}
