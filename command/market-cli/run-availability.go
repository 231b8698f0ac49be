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

func runAvailability(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkPrincipal("caller", c.String("caller"))
	if nil != err {
		return err
	}

	available := c.Bool("available")

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "available: %v\n", available)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SetAvailability(caller, available)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
