// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/data"
)

// SubmitData - the parameters for a data record submission
type SubmitData struct {
	Caller      principal.Principal
	Fingerprint string
	Price       uint64
}

// Submit - create or replace the caller's data record
func (client *Client) Submit(submitConfig *SubmitData) (*data.SubmitReply, error) {

	submitArgs := data.SubmitArguments{
		Caller:      submitConfig.Caller,
		Fingerprint: submitConfig.Fingerprint,
		Price:       submitConfig.Price,
	}

	client.printJson("Submit Request", submitArgs)

	reply := &data.SubmitReply{}
	err := client.client.Call("Data.Submit", submitArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return reply, nil
}

// SetAvailability - toggle the sale flag of the caller's record
func (client *Client) SetAvailability(caller principal.Principal, available bool) (*data.AvailabilityReply, error) {

	availabilityArgs := data.AvailabilityArguments{
		Caller:    caller,
		Available: available,
	}

	client.printJson("Availability Request", availabilityArgs)

	reply := &data.AvailabilityReply{}
	err := client.client.Call("Data.Availability", availabilityArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Availability Reply", reply)

	return reply, nil
}

// GetRecord - retrieve the committed record of an owner
func (client *Client) GetRecord(owner principal.Principal) (*data.RecordReply, error) {

	recordArgs := data.RecordArguments{
		Owner: owner,
	}

	client.printJson("Record Request", recordArgs)

	reply := &data.RecordReply{}
	err := client.client.Call("Data.Record", recordArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Record Reply", reply)

	return reply, nil
}
