// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/order"
	"github.com/bitmark-inc/lnpayd/processor"
	"github.com/bitmark-inc/lnpayd/satoshi"
)

// Service - the operations the RPC surface exposes
type Service interface {
	CreateOrder(ctx context.Context, number uint64) (*order.Order, error)
	Order(ctx context.Context, id uuid.UUID) (*order.Order, error)
	IssuePayment(ctx context.Context, orderID uuid.UUID, amount satoshi.Optional, ttl time.Duration) (*order.Order, *order.Payment, error)
	RunReconciliationPass(ctx context.Context, id processor.ID) (*lightning.Report, error)
	WalletState(ctx context.Context, id processor.ID) (*processor.WalletSnapshot, error)
	PayInvoice(ctx context.Context, id processor.ID, destination string) (*processor.PayOutcome, error)
	Stats() lightning.Stats
	Processors() []lightning.ProcessorStatus
}
