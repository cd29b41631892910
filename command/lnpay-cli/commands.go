// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/lnpayd/satoshi"
)

func checkRequired(c *cli.Context, name string) (string, error) {
	s := c.String(name)
	if "" == s {
		return "", errors.New("missing: --" + name)
	}
	return s, nil
}

func runCreate(c *cli.Context) error {
	number := c.Uint64("number")
	if 0 == number {
		return errors.New("missing: --number")
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.CreateOrder(number)
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runOrder(c *cli.Context) error {
	id, err := checkRequired(c, "id")
	if nil != err {
		return err
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetOrder(id)
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runIssue(c *cli.Context) error {
	id, err := checkRequired(c, "id")
	if nil != err {
		return err
	}

	amount := satoshi.None()
	if s := c.String("amount"); "" != s {
		n, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return satoshi.ErrInvalid(s)
		}
		amount = satoshi.Some(satoshi.Amount(n))
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.IssueInvoice(id, amount, c.Uint64("expiry"))
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runReconcile(c *cli.Context) error {
	id, err := checkRequired(c, "processor")
	if nil != err {
		return err
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Reconcile(id)
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runWallet(c *cli.Context) error {
	id, err := checkRequired(c, "processor")
	if nil != err {
		return err
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.WalletInfo(id)
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runPay(c *cli.Context) error {
	id, err := checkRequired(c, "processor")
	if nil != err {
		return err
	}
	destination, err := checkRequired(c, "destination")
	if nil != err {
		return err
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Pay(id, destination)
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}

func runDetails(c *cli.Context) error {
	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Details()
	if nil != err {
		return err
	}
	printJson(m.w, reply)
	return nil
}
