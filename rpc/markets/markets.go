// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package markets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/access"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100
)

// Market - type for RPC calls
type Market struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	IsTesting    func() bool
}

// New - create the marketplace service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, isTesting func() bool) *Market {
	return &Market{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitMarket, rateBurstMarket),
		IsNormalMode: isNormalMode,
		IsTesting:    isTesting,
	}
}

func (m *Market) checkPrincipal(p principal.Principal) error {
	if p.IsZero() {
		return fault.MissingParameters
	}
	if p.IsTesting() != m.IsTesting() {
		return fault.WrongNetworkForPrincipal
	}
	return nil
}

// Market.Purchase
// ---------------

// PurchaseArguments - buy access to a data owner's record
type PurchaseArguments struct {
	Caller    principal.Principal `json:"caller"`
	DataOwner principal.Principal `json:"dataOwner"`
	Amount    uint64              `json:"amount"`
}

// PurchaseReply - balances after the purchase
type PurchaseReply struct {
	Balance      uint64 `json:"balance"`
	OwnerBalance uint64 `json:"ownerBalance"`
}

// Purchase - pay the listed price and record the access grant
func (m *Market) Purchase(arguments *PurchaseArguments, reply *PurchaseReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	m.Log.Infof("Market.Purchase: %+v", arguments)

	if err := m.checkPrincipal(arguments.Caller); nil != err {
		return err
	}
	if err := m.checkPrincipal(arguments.DataOwner); nil != err {
		return err
	}

	balance, ownerBalance, err := market.Purchase(arguments.Caller, arguments.DataOwner, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = balance
	reply.OwnerBalance = ownerBalance
	return nil
}

// Market.AccessStatus
// -------------------

// AccessStatusArguments - the researcher/owner pair to query
type AccessStatusArguments struct {
	Researcher principal.Principal `json:"researcher"`
	Owner      principal.Principal `json:"owner"`
}

// AccessStatusReply - committed grant state
type AccessStatusReply struct {
	HasAccess bool `json:"hasAccess"`
}

// AccessStatus - whether a researcher has bought access to an owner's data
func (m *Market) AccessStatus(arguments *AccessStatusArguments, reply *AccessStatusReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	if err := m.checkPrincipal(arguments.Researcher); nil != err {
		return err
	}
	if err := m.checkPrincipal(arguments.Owner); nil != err {
		return err
	}

	reply.HasAccess = access.Has(arguments.Researcher, arguments.Owner)
	return nil
}
