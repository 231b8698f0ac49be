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

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkPrincipal("caller", c.String("caller"))
	if nil != err {
		return err
	}

	fingerprint := c.String("fingerprint")
	if "" == fingerprint {
		return fmt.Errorf("missing fingerprint")
	}

	price := c.Uint64("price")

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "fingerprint: %s\n", fingerprint)
		fmt.Fprintf(m.e, "price: %d\n", price)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	submitConfig := &rpccalls.SubmitData{
		Caller:      caller,
		Fingerprint: fingerprint,
		Price:       price,
	}

	response, err := client.Submit(submitConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
