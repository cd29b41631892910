// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the HTTPS surface of the daemon
//
// POST /lnpayd/rpc             JSON-RPC: Order.*, Reconcile.Run, Wallet.*
// POST /lnpayd/webhook/<id>    processor notification, runs a reconciliation pass
// GET  /lnpayd/details         counters and processor status
//
// the poller is a background process that runs the same pass on a timer
package rpc
