// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/command/market-cli/rpccalls"
)

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkPrincipal("caller", c.String("caller"))
	if nil != err {
		return err
	}

	target, err := checkPrincipal("target", c.String("target"))
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "target: %s\n", target)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	mintConfig := &rpccalls.MintData{
		Caller: caller,
		Target: target,
		Amount: amount,
	}

	response, err := client.Mint(mintConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
