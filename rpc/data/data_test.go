// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package data_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/rpc/data"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
	"github.com/bitmark-inc/marketd/storage"
)

const databaseFileName = "data-rpc-test"

func removeFiles() {
	os.RemoveAll(databaseFileName + "-market.leveldb")
}

func setup(t *testing.T) *data.Data {
	fixtures.SetupTestLogger()
	removeFiles()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = asset.Initialise(storage.Pool.DataRecords)
	if nil != err {
		t.Fatalf("asset initialise error: %s", err)
	}

	return data.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return true },
		func() bool { return true },
	)
}

func teardown(t *testing.T) {
	asset.Finalise()
	storage.Finalise()
	removeFiles()
	fixtures.TeardownTestLogger()
}

func TestDataSubmitAndRecord(t *testing.T) {
	d := setup(t)
	defer teardown(t)

	bob := fixtures.Principal("bob")

	arg := data.SubmitArguments{
		Caller:      bob,
		Fingerprint: "01d3c5e1",
		Price:       500,
	}
	var reply data.SubmitReply
	err := d.Submit(&arg, &reply)
	assert.Nil(t, err, "wrong Submit")
	assert.True(t, reply.OK, "wrong OK")

	var recordReply data.RecordReply
	err = d.Record(&data.RecordArguments{Owner: bob}, &recordReply)
	assert.Nil(t, err, "wrong Record")
	assert.Equal(t, "01d3c5e1", recordReply.Record.Fingerprint, "wrong fingerprint")
	assert.Equal(t, uint64(500), recordReply.Record.Price, "wrong price")
	assert.True(t, recordReply.Record.Available, "wrong availability")
}

func TestDataAvailability(t *testing.T) {
	d := setup(t)
	defer teardown(t)

	bob := fixtures.Principal("bob")

	var submitReply data.SubmitReply
	err := d.Submit(&data.SubmitArguments{
		Caller:      bob,
		Fingerprint: "01d3c5e1",
		Price:       500,
	}, &submitReply)
	assert.Nil(t, err, "wrong Submit")

	var availabilityReply data.AvailabilityReply
	err = d.Availability(&data.AvailabilityArguments{
		Caller:    bob,
		Available: false,
	}, &availabilityReply)
	assert.Nil(t, err, "wrong Availability")
	assert.True(t, availabilityReply.OK, "wrong OK")

	var recordReply data.RecordReply
	err = d.Record(&data.RecordArguments{Owner: bob}, &recordReply)
	assert.Nil(t, err, "wrong Record")
	assert.False(t, recordReply.Record.Available, "wrong availability")
}

func TestDataSubmitEmptyFingerprint(t *testing.T) {
	d := setup(t)
	defer teardown(t)

	arg := data.SubmitArguments{
		Caller: fixtures.Principal("bob"),
		Price:  500,
	}
	var reply data.SubmitReply
	err := d.Submit(&arg, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestDataRecordMissing(t *testing.T) {
	d := setup(t)
	defer teardown(t)

	var reply data.RecordReply
	err := d.Record(&data.RecordArguments{Owner: fixtures.Principal("nobody")}, &reply)
	assert.Equal(t, fault.NotFound, err, "wrong error")
}
