// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "market-cli"
	app.Usage = "command line access to a marketd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2230",
			Usage: " marketd host/IP and port, `HOST:PORT`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display node information",
			Action: runInfo,
		},
		{
			Name:   "supply",
			Usage:  "display the total token supply",
			Action: runSupply,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of a principal",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "principal, p",
					Value: "",
					Usage: "*principal `ID`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "mint",
			Usage:     "create new tokens, only the contract owner may mint",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*contract owner `ID`",
				},
				cli.StringFlag{
					Name:  "target, t",
					Value: "",
					Usage: "*principal `ID` to receive the tokens",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*number of tokens to create",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "move tokens to another principal",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*sending principal `ID`",
				},
				cli.StringFlag{
					Name:  "recipient, r",
					Value: "",
					Usage: "*receiving principal `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*number of tokens to move",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "submit",
			Usage:     "offer a data record for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*data owner `ID`",
				},
				cli.StringFlag{
					Name:  "fingerprint, f",
					Value: "",
					Usage: "*fingerprint of the data `STRING`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Value: 0,
					Usage: " asking price in tokens",
				},
			},
			Action: runSubmit,
		},
		{
			Name:      "availability",
			Usage:     "toggle the sale flag on a data record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*data owner `ID`",
				},
				cli.BoolFlag{
					Name:  "available, s",
					Usage: " set the record as for sale",
				},
			},
			Action: runAvailability,
		},
		{
			Name:      "record",
			Usage:     "display a data record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*data owner `ID`",
				},
			},
			Action: runRecord,
		},
		{
			Name:      "register",
			Usage:     "register the caller as a researcher",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*researcher `ID`",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "verify",
			Usage:     "endorse a registered researcher, only the contract owner may verify",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*contract owner `ID`",
				},
				cli.StringFlag{
					Name:  "target, t",
					Value: "",
					Usage: "*researcher `ID` to endorse",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "status",
			Usage:     "display researcher registration state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "principal, p",
					Value: "",
					Usage: "*principal `ID`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "purchase",
			Usage:     "buy access to a data record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*verified researcher `ID`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*data owner `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*payment, must match the listed price",
				},
			},
			Action: runPurchase,
		},
		{
			Name:      "access",
			Usage:     "display access grant state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "researcher, r",
					Value: "",
					Usage: "*researcher `ID`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*data owner `ID`",
				},
			},
			Action: runAccess,
		},
		{
			Name:   "version",
			Usage:  "display version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
