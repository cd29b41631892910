// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
)

// CreateServer - register all RPC services
func CreateServer(log *logger.L, service Service, timeout time.Duration) *rpc.Server {
	server := rpc.NewServer()

	_ = server.Register(NewOrder(log, service, timeout))
	_ = server.Register(NewReconcile(log, service, timeout))
	_ = server.Register(NewWallet(log, service, timeout))

	return server
}
