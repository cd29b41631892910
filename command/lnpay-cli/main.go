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

	"github.com/bitmark-inc/lnpayd/command/lnpay-cli/rpccalls"
)

type metadata struct {
	connect     string
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "lnpay-cli"
	app.Usage = "lnpayd client"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2160",
			Usage:  " lnpayd rpc `HOST:PORT`",
			EnvVar: "LNPAY_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 of the server certificate `HEX`",
			EnvVar: "LNPAY_FINGERPRINT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "create a new order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "number, n",
					Usage: "*order `NUMBER`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "order",
			Usage:     "show an order and its payment attempts",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*order `UUID`",
				},
			},
			Action: runOrder,
		},
		{
			Name:      "issue",
			Usage:     "issue a lightning invoice for an order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*order `UUID`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: " amount in `SATOSHIS` [any amount]",
				},
				cli.Uint64Flag{
					Name:  "expiry, e",
					Usage: " invoice lifetime in `SECONDS` [server default]",
				},
			},
			Action: runIssue,
		},
		{
			Name:      "reconcile",
			Usage:     "run a reconciliation pass against a processor",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "processor, p",
					Value: "",
					Usage: "*processor `ID`",
				},
			},
			Action: runReconcile,
		},
		{
			Name:      "wallet",
			Usage:     "show processor wallet balance and recent transactions",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "processor, p",
					Value: "",
					Usage: "*processor `ID`",
				},
			},
			Action: runWallet,
		},
		{
			Name:      "pay",
			Usage:     "pay a lightning invoice from a processor wallet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "processor, p",
					Value: "",
					Usage: "*processor `ID`",
				},
				cli.StringFlag{
					Name:  "destination, d",
					Value: "",
					Usage: "*payment request `INVOICE`",
				},
			},
			Action: runPay,
		},
		{
			Name:   "details",
			Usage:  "display lnpayd counters and processor status",
			Action: runDetails,
		},
		{
			Name:  "version",
			Usage: "display lnpay-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	return app
}

// connect to the daemon named by the global flags
func newClient(c *cli.Context) (*rpccalls.Client, *metadata, error) {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return nil, nil, err
	}
	return client, m, nil
}
