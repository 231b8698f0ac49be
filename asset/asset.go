// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the registry of data records offered for sale
//
// each owner has at most one record: a fingerprint of the off-chain
// data, an asking price and an availability flag.  re-submitting
// replaces the record and resets availability.
package asset

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/storage"
)

// MaximumFingerprintLength - hard limit on the stored fingerprint
const MaximumFingerprintLength = 1024

// record field layout: price ++ availability ++ fingerprint
const (
	priceLength        = 8
	availabilityOffset = priceLength
	fingerprintOffset  = availabilityOffset + 1
)

// Record - a data record as stored for one owner
type Record struct {
	Owner       principal.Principal `json:"owner"`
	Fingerprint string              `json:"fingerprint"`
	Price       uint64              `json:"price"`
	Available   bool                `json:"available"`
}

// globals for this module
type assetData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	dataRecords storage.Handle

	// set once during initialise
	initialised bool
}

// global data
var globalData assetData

// Initialise - setup the data registry
func Initialise(dataRecords storage.Handle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("asset")
	globalData.log.Info("starting…")

	globalData.dataRecords = dataRecords
	globalData.initialised = true
	return nil
}

// Finalise - shutdown the data registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.dataRecords = nil
	globalData.initialised = false
	return nil
}

// Submit - create or replace the caller's data record
//
// availability is always reset to true, also on replacement
func Submit(trx storage.Transaction, caller principal.Principal, fingerprint string, price uint64) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if 0 == len(fingerprint) {
		return fault.MissingParameters
	}
	if len(fingerprint) > MaximumFingerprintLength {
		return fault.FingerprintTooLong
	}

	trx.Put(globalData.dataRecords, caller.Bytes(), pack(fingerprint, price, true))
	return nil
}

// SetAvailability - toggle the sale flag on the caller's record
func SetAvailability(trx storage.Transaction, caller principal.Principal, available bool) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	packed := trx.Get(globalData.dataRecords, caller.Bytes())
	if nil == packed {
		return fault.NotFound
	}

	fingerprint, price, _ := unpack(packed)
	trx.Put(globalData.dataRecords, caller.Bytes(), pack(fingerprint, price, available))
	return nil
}

// Fetch - read the committed record of an owner
func Fetch(owner principal.Principal) (*Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	packed := globalData.dataRecords.Get(owner.Bytes())
	if nil == packed {
		return nil, fault.NotFound
	}

	fingerprint, price, available := unpack(packed)
	return &Record{
		Owner:       owner,
		Fingerprint: fingerprint,
		Price:       price,
		Available:   available,
	}, nil
}

func pack(fingerprint string, price uint64, available bool) []byte {
	packed := make([]byte, fingerprintOffset, fingerprintOffset+len(fingerprint))
	binary.BigEndian.PutUint64(packed[:priceLength], price)
	if available {
		packed[availabilityOffset] = 0x01
	}
	return append(packed, fingerprint...)
}

func unpack(packed []byte) (string, uint64, bool) {
	if len(packed) < fingerprintOffset {
		logger.Panicf("asset.unpack truncated record: %x", packed)
	}
	price := binary.BigEndian.Uint64(packed[:priceLength])
	available := 0x00 != packed[availabilityOffset]
	return string(packed[fingerprintOffset:]), price, available
}
