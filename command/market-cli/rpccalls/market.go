// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/markets"
)

// PurchaseData - the parameters for a purchase request
type PurchaseData struct {
	Caller    principal.Principal
	DataOwner principal.Principal
	Amount    uint64
}

// Purchase - pay the listed price and record the access grant
func (client *Client) Purchase(purchaseConfig *PurchaseData) (*markets.PurchaseReply, error) {

	purchaseArgs := markets.PurchaseArguments{
		Caller:    purchaseConfig.Caller,
		DataOwner: purchaseConfig.DataOwner,
		Amount:    purchaseConfig.Amount,
	}

	client.printJson("Purchase Request", purchaseArgs)

	reply := &markets.PurchaseReply{}
	err := client.client.Call("Market.Purchase", purchaseArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Purchase Reply", reply)

	return reply, nil
}

// GetAccessStatus - committed grant state of a researcher/owner pair
func (client *Client) GetAccessStatus(researcher principal.Principal, owner principal.Principal) (*markets.AccessStatusReply, error) {

	accessArgs := markets.AccessStatusArguments{
		Researcher: researcher,
		Owner:      owner,
	}

	client.printJson("AccessStatus Request", accessArgs)

	reply := &markets.AccessStatusReply{}
	err := client.client.Call("Market.AccessStatus", accessArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("AccessStatus Reply", reply)

	return reply, nil
}
