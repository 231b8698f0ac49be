// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package researchers

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/researcher"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
	"github.com/bitmark-inc/marketd/storage"
)

const (
	rateLimitResearcher = 200
	rateBurstResearcher = 100
)

// Researcher - type for RPC calls
type Researcher struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	IsTesting    func() bool
}

// New - create the researcher registry service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, isTesting func() bool) *Researcher {
	return &Researcher{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitResearcher, rateBurstResearcher),
		IsNormalMode: isNormalMode,
		IsTesting:    isTesting,
	}
}

func (r *Researcher) checkPrincipal(p principal.Principal) error {
	if p.IsZero() {
		return fault.MissingParameters
	}
	if p.IsTesting() != r.IsTesting() {
		return fault.WrongNetworkForPrincipal
	}
	return nil
}

// Researcher.Register
// -------------------

// RegisterArguments - the caller registering as a researcher
type RegisterArguments struct {
	Caller principal.Principal `json:"caller"`
}

// RegisterReply - result of the registration
type RegisterReply struct {
	OK bool `json:"ok"`
}

// Register - mark the caller as a registered researcher
func (r *Researcher) Register(arguments *RegisterArguments, reply *RegisterReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	r.Log.Infof("Researcher.Register: %+v", arguments)

	if err := r.checkPrincipal(arguments.Caller); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = researcher.Register(trx, arguments.Caller)
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

// Researcher.Verify
// -----------------

// VerifyArguments - owner endorsement of a researcher
type VerifyArguments struct {
	Caller principal.Principal `json:"caller"`
	Target principal.Principal `json:"target"`
}

// VerifyReply - result of the verification
type VerifyReply struct {
	OK bool `json:"ok"`
}

// Verify - owner endorsement of a registered researcher
func (r *Researcher) Verify(arguments *VerifyArguments, reply *VerifyReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	r.Log.Infof("Researcher.Verify: %+v", arguments)

	if err := r.checkPrincipal(arguments.Caller); nil != err {
		return err
	}
	if err := r.checkPrincipal(arguments.Target); nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = researcher.Verify(trx, arguments.Caller, arguments.Target)
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

// Researcher.Status
// -----------------

// StatusArguments - the principal to query
type StatusArguments struct {
	Principal principal.Principal `json:"principal"`
}

// StatusReply - registration and verification state
type StatusReply struct {
	Registered bool `json:"registered"`
	Verified   bool `json:"verified"`
}

// Status - committed registration state of any principal
func (r *Researcher) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringInitialisation
	}

	if err := r.checkPrincipal(arguments.Principal); nil != err {
		return err
	}

	reply.Registered = researcher.IsRegistered(arguments.Principal)
	reply.Verified = researcher.IsVerified(arguments.Principal)
	return nil
}
