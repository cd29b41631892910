// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - leveldb backed order store
//
// keys are a single prefix byte followed by the record key:
//
//	O <order uuid>  → JSON order with all of its payments
//	I <invoice id>  → order uuid
//
// every change to an order and its index entry is one batch write
package storage
