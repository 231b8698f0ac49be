// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package markets_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/access"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/genesis"
	"github.com/bitmark-inc/marketd/ledger"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/researcher"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
	"github.com/bitmark-inc/marketd/rpc/markets"
	"github.com/bitmark-inc/marketd/storage"
)

const databaseFileName = "market-rpc-test"

func removeFiles() {
	os.RemoveAll(databaseFileName + "-market.leveldb")
}

func setup(t *testing.T) *markets.Market {
	fixtures.SetupTestLogger()
	removeFiles()

	owner := genesis.Owner(true)

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
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

	return markets.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return true },
		func() bool { return true },
	)
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

// fund, register, verify and list through the underlying packages
func prepare(t *testing.T, buyer principal.Principal, seller principal.Principal, price uint64) {
	owner := genesis.Owner(true)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	_, err = ledger.Mint(trx, owner, buyer, 1000)
	if nil != err {
		t.Fatalf("mint error: %s", err)
	}
	err = researcher.Register(trx, buyer)
	if nil != err {
		t.Fatalf("register error: %s", err)
	}
	err = researcher.Verify(trx, owner, buyer)
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	err = asset.Submit(trx, seller, "0f1e2d3c", price)
	if nil != err {
		t.Fatalf("submit error: %s", err)
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestMarketPurchase(t *testing.T) {
	m := setup(t)
	defer teardown(t)

	carol := fixtures.Principal("carol")
	bob := fixtures.Principal("bob")
	prepare(t, carol, bob, 250)

	arg := markets.PurchaseArguments{
		Caller:    carol,
		DataOwner: bob,
		Amount:    250,
	}
	var reply markets.PurchaseReply
	err := m.Purchase(&arg, &reply)
	assert.Nil(t, err, "wrong Purchase")
	assert.Equal(t, uint64(750), reply.Balance, "wrong balance")
	assert.Equal(t, uint64(250), reply.OwnerBalance, "wrong owner balance")

	var accessReply markets.AccessStatusReply
	err = m.AccessStatus(&markets.AccessStatusArguments{
		Researcher: carol,
		Owner:      bob,
	}, &accessReply)
	assert.Nil(t, err, "wrong AccessStatus")
	assert.True(t, accessReply.HasAccess, "wrong access")
}

func TestMarketPurchasePriceMismatch(t *testing.T) {
	m := setup(t)
	defer teardown(t)

	carol := fixtures.Principal("carol")
	bob := fixtures.Principal("bob")
	prepare(t, carol, bob, 250)

	arg := markets.PurchaseArguments{
		Caller:    carol,
		DataOwner: bob,
		Amount:    200,
	}
	var reply markets.PurchaseReply
	err := m.Purchase(&arg, &reply)
	assert.Equal(t, fault.PriceMismatch, err, "wrong error")
}

func TestMarketPurchaseUnverified(t *testing.T) {
	m := setup(t)
	defer teardown(t)

	mallory := fixtures.Principal("mallory")
	bob := fixtures.Principal("bob")
	prepare(t, fixtures.Principal("carol"), bob, 250)

	arg := markets.PurchaseArguments{
		Caller:    mallory,
		DataOwner: bob,
		Amount:    250,
	}
	var reply markets.PurchaseReply
	err := m.Purchase(&arg, &reply)
	assert.Equal(t, fault.Unauthorized, err, "wrong error")
}

func TestMarketAccessStatusNoGrant(t *testing.T) {
	m := setup(t)
	defer teardown(t)

	var reply markets.AccessStatusReply
	err := m.AccessStatus(&markets.AccessStatusArguments{
		Researcher: fixtures.Principal("carol"),
		Owner:      fixtures.Principal("bob"),
	}, &reply)
	assert.Nil(t, err, "wrong AccessStatus")
	assert.False(t, reply.HasAccess, "wrong access")
}
