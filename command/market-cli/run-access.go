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

func runAccess(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	researcher, err := checkPrincipal("researcher", c.String("researcher"))
	if nil != err {
		return err
	}

	owner, err := checkPrincipal("owner", c.String("owner"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "researcher: %s\n", researcher)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetAccessStatus(researcher, owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
