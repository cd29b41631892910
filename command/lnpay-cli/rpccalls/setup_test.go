// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"io/ioutil"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/command/lnpay-cli/rpccalls"
	"github.com/bitmark-inc/lnpayd/fixtures"
	"github.com/bitmark-inc/lnpayd/rpc"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a TLS test server running the daemon handlers
func newServer(service rpc.Service) *httptest.Server {
	log := logger.New(fixtures.LogCategory)
	h := rpc.NewHandler(
		log,
		rpc.CreateServer(log, service, 5*time.Second),
		service,
		rpc.HandlerOptions{
			Version:            "test",
			MaximumConnections: 10,
			WebhookRate:        1,
			Timeout:            5 * time.Second,
		},
	)
	return httptest.NewTLSServer(h.Mux())
}

func newClient(server *httptest.Server, fingerprint string) (*rpccalls.Client, error) {
	return rpccalls.NewClient(strings.TrimPrefix(server.URL, "https://"), fingerprint, false, ioutil.Discard)
}
