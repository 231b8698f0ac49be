// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/genesis"
	"github.com/bitmark-inc/marketd/ledger"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
	"github.com/bitmark-inc/marketd/storage"
)

const databaseFileName = "ledger-test"

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
}

func teardown(t *testing.T) {
	ledger.Finalise()
	storage.Finalise()
	removeFiles()
	fixtures.TeardownTestLogger()
}

func TestGenesisSeeding(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.Equal(t, genesis.InitialSupply, ledger.TotalSupply(), "wrong initial supply")
	assert.Equal(t, genesis.InitialSupply, ledger.Balance(owner), "wrong owner balance")
	assert.Equal(t, uint64(0), ledger.Balance(fixtures.Principal("nobody")), "wrong empty balance")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
	assert.Equal(t, owner, ledger.Owner(), "wrong owner")
}

func TestMint(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	balance, err := ledger.Mint(trx, owner, alice, 500)
	assert.Nil(t, err, "wrong Mint")
	assert.Equal(t, uint64(500), balance, "wrong minted balance")

	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")

	assert.Equal(t, uint64(500), ledger.Balance(alice), "wrong balance")
	assert.Equal(t, genesis.InitialSupply+500, ledger.TotalSupply(), "wrong supply")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}

func TestMintUnauthorized(t *testing.T) {
	setup(t)
	defer teardown(t)

	mallory := fixtures.Principal("mallory")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	_, err = ledger.Mint(trx, mallory, mallory, 500)
	assert.Equal(t, fault.Unauthorized, err, "wrong error")
	trx.Abort()

	assert.Equal(t, uint64(0), ledger.Balance(mallory), "wrong balance")
	assert.Equal(t, genesis.InitialSupply, ledger.TotalSupply(), "wrong supply")
}

func TestMintZeroQuantity(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	_, err = ledger.Mint(trx, owner, owner, 0)
	assert.Equal(t, fault.InvalidQuantity, err, "wrong error")
	trx.Abort()
}

func TestTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	balance, err := ledger.Transfer(trx, owner, alice, 1000)
	assert.Nil(t, err, "wrong Transfer")
	assert.Equal(t, genesis.InitialSupply-1000, balance, "wrong remaining balance")

	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")

	assert.Equal(t, uint64(1000), ledger.Balance(alice), "wrong recipient balance")
	assert.Equal(t, genesis.InitialSupply-1000, ledger.Balance(owner), "wrong sender balance")
	assert.Equal(t, genesis.InitialSupply, ledger.TotalSupply(), "wrong supply")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}

func TestTransferInsufficientFunds(t *testing.T) {
	setup(t)
	defer teardown(t)

	alice := fixtures.Principal("alice")
	bob := fixtures.Principal("bob")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	_, err = ledger.Transfer(trx, alice, bob, 1)
	assert.Equal(t, fault.InsufficientFunds, err, "wrong error")
	trx.Abort()

	assert.Equal(t, uint64(0), ledger.Balance(bob), "wrong balance")
}

func TestTransferZeroQuantity(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	_, err = ledger.Transfer(trx, owner, fixtures.Principal("alice"), 0)
	assert.Equal(t, fault.InvalidQuantity, err, "wrong error")
	trx.Abort()
}

func TestSelfTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "wrong Begin")

	balance, err := ledger.Transfer(trx, owner, owner, 1000)
	assert.Nil(t, err, "wrong Transfer")
	assert.Equal(t, genesis.InitialSupply, balance, "wrong balance")

	err = trx.Commit()
	assert.Nil(t, err, "wrong Commit")

	assert.Equal(t, genesis.InitialSupply, ledger.Balance(owner), "wrong balance")
	assert.Nil(t, ledger.CheckSupply(), "wrong supply check")
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := ledger.Initialise(storage.Pool.Balances, storage.Pool.Supply, owner)
	assert.Equal(t, fault.AlreadyInitialised, err, "wrong error")
}
