// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - initial marketplace state
//
// the contract owner is a well-known principal derived from a fixed
// seed, one for each network flag, and receives the whole initial
// token supply when an empty database is first opened
package genesis

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/principal"
)

// InitialSupply - tokens minted to the contract owner at genesis
const InitialSupply uint64 = 1000000000

// fixed seeds for the contract owner identifiers
const (
	liveOwnerSeed    = "marketd.genesis.owner.live"
	testingOwnerSeed = "marketd.genesis.owner.testing"
)

var liveOwner principal.Principal
var testingOwner principal.Principal

func init() {
	var err error

	liveDigest := sha3.Sum256([]byte(liveOwnerSeed))
	liveOwner, err = principal.FromIdentifier(false, liveDigest[:])
	logger.PanicIfError("genesis.liveOwner", err)

	testingDigest := sha3.Sum256([]byte(testingOwnerSeed))
	testingOwner, err = principal.FromIdentifier(true, testingDigest[:])
	logger.PanicIfError("genesis.testingOwner", err)
}

// Owner - the contract owner principal for a network flag
func Owner(testnet bool) principal.Principal {
	if testnet {
		return testingOwner
	}
	return liveOwner
}
