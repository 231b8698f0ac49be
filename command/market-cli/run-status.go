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

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	p, err := checkPrincipal("principal", c.String("principal"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "principal: %s\n", p)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetStatus(p)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
