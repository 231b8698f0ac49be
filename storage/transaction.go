// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// Transaction - atomic write access across all pools
//
// writes are accumulated in a batch and become durable on Commit;
// until then they are only visible through the pool handles of this
// process, via the cache
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(Handle, []byte)
	DumpTx() []byte
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	GetNB(Handle, []byte) (uint64, []byte)
	Has(Handle, []byte) bool
	InUse() bool
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
}

type transactionData struct {
	sync.Mutex
	inUse      bool
	dataAccess []DataAccess
}

func newTransaction(access []DataAccess) Transaction {
	return &transactionData{
		inUse:      false,
		dataAccess: access,
	}
}

func (t *transactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		err := access.Begin()
		if nil != err {
			return err
		}
	}
	t.inUse = true
	return nil
}

func (t *transactionData) Put(h Handle, key []byte, value []byte) {
	h.Put(key, value)
}

func (t *transactionData) PutN(h Handle, key []byte, value uint64) {
	h.PutN(key, value)
}

func (t *transactionData) Delete(h Handle, key []byte) {
	h.Delete(key)
}

func (t *transactionData) Get(h Handle, key []byte) []byte {
	return h.Get(key)
}

func (t *transactionData) GetN(h Handle, key []byte) (uint64, bool) {
	return h.GetN(key)
}

func (t *transactionData) GetNB(h Handle, key []byte) (uint64, []byte) {
	return h.GetNB(key)
}

func (t *transactionData) Has(h Handle, key []byte) bool {
	return h.Has(key)
}

func (t *transactionData) Commit() error {
	for _, access := range t.dataAccess {
		err := access.Commit()
		if nil != err {
			t.Abort()
			return err
		}
	}
	t.Abort()
	return nil
}

func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		access.Abort()
	}
	t.inUse = false
}

func (t *transactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		if access.InUse() {
			return true
		}
	}
	return false
}

func (t *transactionData) DumpTx() []byte {
	dump := []byte{}
	for _, access := range t.dataAccess {
		dump = append(dump, access.DumpTx()...)
	}
	return dump
}
