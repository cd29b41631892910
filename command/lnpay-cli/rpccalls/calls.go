// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/rpc"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// CreateOrder - store a new order
func (client *Client) CreateOrder(number uint64) (*rpc.OrderReply, error) {
	arguments := rpc.OrderCreateArguments{
		Number: number,
	}
	var reply rpc.OrderReply
	if err := client.Call("Order.Create", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetOrder - read an order
func (client *Client) GetOrder(id string) (*rpc.OrderReply, error) {
	arguments := rpc.OrderGetArguments{
		ID: id,
	}
	var reply rpc.OrderReply
	if err := client.Call("Order.Get", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// IssueInvoice - issue a lightning invoice for an order
func (client *Client) IssueInvoice(id string, amount satoshi.Optional, expiry uint64) (*rpc.OrderIssueReply, error) {
	arguments := rpc.OrderIssueArguments{
		ID:     id,
		Amount: amount,
		Expiry: expiry,
	}
	var reply rpc.OrderIssueReply
	if err := client.Call("Order.Issue", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Reconcile - run a reconciliation pass
func (client *Client) Reconcile(id string) (*lightning.Report, error) {
	arguments := rpc.ReconcileRunArguments{
		Processor: processor.ID(id),
	}
	var reply lightning.Report
	if err := client.Call("Reconcile.Run", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// WalletInfo - balance and recent transactions
func (client *Client) WalletInfo(id string) (*processor.WalletSnapshot, error) {
	arguments := rpc.WalletInfoArguments{
		Processor: processor.ID(id),
	}
	var reply processor.WalletSnapshot
	if err := client.Call("Wallet.Info", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Pay - pay a lightning invoice
func (client *Client) Pay(id string, destination string) (*processor.PayOutcome, error) {
	arguments := rpc.WalletPayArguments{
		Processor:   processor.ID(id),
		Destination: destination,
	}
	var reply processor.PayOutcome
	if err := client.Call("Wallet.Pay", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Details - daemon counters and processor status
func (client *Client) Details() (*rpc.DetailsReply, error) {
	var reply rpc.DetailsReply
	if err := client.Get(rpc.DetailsPath, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
