// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/ledger"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
	"github.com/bitmark-inc/marketd/storage"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for RPC calls
type Token struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	IsTesting    func() bool
}

// New - create the token service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, isTesting func() bool) *Token {
	return &Token{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitToken, rateBurstToken),
		IsNormalMode: isNormalMode,
		IsTesting:    isTesting,
	}
}

// common argument checks
func (token *Token) checkPrincipal(p principal.Principal) error {
	if p.IsZero() {
		return fault.MissingParameters
	}
	if p.IsTesting() != token.IsTesting() {
		return fault.WrongNetworkForPrincipal
	}
	return nil
}

// Token.Mint
// ----------

// MintArguments - arguments for minting new tokens
type MintArguments struct {
	Caller principal.Principal `json:"caller"`
	Target principal.Principal `json:"target"`
	Amount uint64              `json:"amount"`
}

// MintReply - results from minting
type MintReply struct {
	Balance uint64 `json:"balance"`
	Supply  uint64 `json:"supply"`
}

// Mint - create new tokens for a target principal
func (token *Token) Mint(arguments *MintArguments, reply *MintReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}
	if !token.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	token.Log.Infof("Token.Mint: %+v", arguments)

	if err := token.checkPrincipal(arguments.Caller); nil != err {
		return err
	}
	if err := token.checkPrincipal(arguments.Target); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	balance, err := ledger.Mint(trx, arguments.Caller, arguments.Target, arguments.Amount)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Balance = balance
	reply.Supply = ledger.TotalSupply()
	return nil
}

// Token.Transfer
// --------------

// TransferArguments - arguments for a token transfer
type TransferArguments struct {
	Caller    principal.Principal `json:"caller"`
	Recipient principal.Principal `json:"recipient"`
	Amount    uint64              `json:"amount"`
}

// TransferReply - results from a token transfer
type TransferReply struct {
	Balance uint64 `json:"balance"`
}

// Transfer - move tokens from the caller to a recipient
func (token *Token) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}
	if !token.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	token.Log.Infof("Token.Transfer: %+v", arguments)

	if err := token.checkPrincipal(arguments.Caller); nil != err {
		return err
	}
	if err := token.checkPrincipal(arguments.Recipient); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	balance, err := ledger.Transfer(trx, arguments.Caller, arguments.Recipient, arguments.Amount)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	reply.Balance = balance
	return nil
}

// Token.Balance
// -------------

// BalanceArguments - the principal to query
type BalanceArguments struct {
	Principal principal.Principal `json:"principal"`
}

// BalanceReply - the committed balance
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// Balance - committed balance of any principal
func (token *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}
	if !token.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	if err := token.checkPrincipal(arguments.Principal); nil != err {
		return err
	}

	reply.Balance = ledger.Balance(arguments.Principal)
	return nil
}

// Token.Supply
// ------------

// SupplyArguments - empty arguments for supply request
type SupplyArguments struct{}

// SupplyReply - the committed total supply
type SupplyReply struct {
	Supply uint64 `json:"supply"`
}

// Supply - total of all minted tokens
func (token *Token) Supply(arguments *SupplyArguments, reply *SupplyReply) error {
	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}
	if !token.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	reply.Supply = ledger.TotalSupply()
	return nil
}
