// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package data

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
	"github.com/bitmark-inc/marketd/storage"
)

const (
	rateLimitData = 200
	rateBurstData = 100
)

// Data - type for RPC calls
type Data struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	IsTesting    func() bool
}

// New - create the data registry service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, isTesting func() bool) *Data {
	return &Data{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitData, rateBurstData),
		IsNormalMode: isNormalMode,
		IsTesting:    isTesting,
	}
}

func (data *Data) checkPrincipal(p principal.Principal) error {
	if p.IsZero() {
		return fault.MissingParameters
	}
	if p.IsTesting() != data.IsTesting() {
		return fault.WrongNetworkForPrincipal
	}
	return nil
}

// Data.Submit
// -----------

// SubmitArguments - a data record offer
type SubmitArguments struct {
	Caller      principal.Principal `json:"caller"`
	Fingerprint string              `json:"fingerprint"`
	Price       uint64              `json:"price"`
}

// SubmitReply - result of a submission
type SubmitReply struct {
	OK bool `json:"ok"`
}

// Submit - create or replace the caller's data record
func (data *Data) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(data.Limiter); nil != err {
		return err
	}
	if !data.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	data.Log.Infof("Data.Submit: %+v", arguments)

	if err := data.checkPrincipal(arguments.Caller); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = asset.Submit(trx, arguments.Caller, arguments.Fingerprint, arguments.Price)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.OK = true
	return nil
}

// Data.Availability
// -----------------

// AvailabilityArguments - toggle the sale flag
type AvailabilityArguments struct {
	Caller    principal.Principal `json:"caller"`
	Available bool                `json:"available"`
}

// AvailabilityReply - result of the toggle
type AvailabilityReply struct {
	OK bool `json:"ok"`
}

// Availability - set the sale flag on the caller's record
func (data *Data) Availability(arguments *AvailabilityArguments, reply *AvailabilityReply) error {
	if err := ratelimit.Limit(data.Limiter); nil != err {
		return err
	}
	if !data.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	data.Log.Infof("Data.Availability: %+v", arguments)

	if err := data.checkPrincipal(arguments.Caller); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = asset.SetAvailability(trx, arguments.Caller, arguments.Available)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.OK = true
	return nil
}

// Data.Record
// -----------

// RecordArguments - the owner to query
type RecordArguments struct {
	Owner principal.Principal `json:"owner"`
}

// RecordReply - the stored record
type RecordReply struct {
	Record *asset.Record `json:"record"`
}

// Record - read the committed record of an owner
func (data *Data) Record(arguments *RecordArguments, reply *RecordReply) error {
	if err := ratelimit.Limit(data.Limiter); nil != err {
		return err
	}
	if !data.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	if err := data.checkPrincipal(arguments.Owner); nil != err {
		return err
	}

	record, err := asset.Fetch(arguments.Owner)
	if nil != err {
		return err
	}

	reply.Record = record
	return nil
}
