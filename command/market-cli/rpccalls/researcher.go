// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/principal"
	"github.com/bitmark-inc/marketd/rpc/researchers"
)

// Register - mark the caller as a registered researcher
func (client *Client) Register(caller principal.Principal) (*researchers.RegisterReply, error) {

	registerArgs := researchers.RegisterArguments{
		Caller: caller,
	}

	client.printJson("Register Request", registerArgs)

	reply := &researchers.RegisterReply{}
	err := client.client.Call("Researcher.Register", registerArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Register Reply", reply)

	return reply, nil
}

// Verify - owner endorsement of a registered researcher
func (client *Client) Verify(caller principal.Principal, target principal.Principal) (*researchers.VerifyReply, error) {

	verifyArgs := researchers.VerifyArguments{
		Caller: caller,
		Target: target,
	}

	client.printJson("Verify Request", verifyArgs)

	reply := &researchers.VerifyReply{}
	err := client.client.Call("Researcher.Verify", verifyArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Verify Reply", reply)

	return reply, nil
}

// GetStatus - registration state of any principal
func (client *Client) GetStatus(p principal.Principal) (*researchers.StatusReply, error) {

	statusArgs := researchers.StatusArguments{
		Principal: p,
	}

	client.printJson("Status Request", statusArgs)

	reply := &researchers.StatusReply{}
	err := client.client.Call("Researcher.Status", statusArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return reply, nil
}
