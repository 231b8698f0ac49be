// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/token"
)

// MintData - the parameters for a mint request
type MintData struct {
	Caller principal.Principal
	Target principal.Principal
	Amount uint64
}

// Mint - create new tokens for a target principal
func (client *Client) Mint(mintConfig *MintData) (*token.MintReply, error) {

	mintArgs := token.MintArguments{
		Caller: mintConfig.Caller,
		Target: mintConfig.Target,
		Amount: mintConfig.Amount,
	}

	client.printJson("Mint Request", mintArgs)

	reply := &token.MintReply{}
	err := client.client.Call("Token.Mint", mintArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Mint Reply", reply)

	return reply, nil
}

// TransferData - the parameters for a transfer request
type TransferData struct {
	Caller    principal.Principal
	Recipient principal.Principal
	Amount    uint64
}

// Transfer - move tokens between principals
func (client *Client) Transfer(transferConfig *TransferData) (*token.TransferReply, error) {

	transferArgs := token.TransferArguments{
		Caller:    transferConfig.Caller,
		Recipient: transferConfig.Recipient,
		Amount:    transferConfig.Amount,
	}

	client.printJson("Transfer Request", transferArgs)

	reply := &token.TransferReply{}
	err := client.client.Call("Token.Transfer", transferArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return reply, nil
}

// GetBalance - retrieve the committed balance of a principal
func (client *Client) GetBalance(p principal.Principal) (*token.BalanceReply, error) {

	balanceArgs := token.BalanceArguments{
		Principal: p,
	}

	client.printJson("Balance Request", balanceArgs)

	reply := &token.BalanceReply{}
	err := client.client.Call("Token.Balance", balanceArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}

// GetSupply - retrieve the committed total supply
func (client *Client) GetSupply() (*token.SupplyReply, error) {

	supplyArgs := token.SupplyArguments{}

	client.printJson("Supply Request", supplyArgs)

	reply := &token.SupplyReply{}
	err := client.client.Call("Token.Supply", supplyArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Supply Reply", reply)

	return reply, nil
}
