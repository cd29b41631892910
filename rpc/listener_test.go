// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/fixtures"
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/rpc"
	"github.com/bitmark-inc/lnpayd/rpc/mocks"
)

func testTLS(t *testing.T) *tls.Config {
	cert, key, err := certgen.NewTLSCertPair("lnpayd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	assert.Nil(t, err, "wrong certificate generation")

	tlsConfig, fingerprint, err := rpc.Certificate(logger.New(fixtures.LogCategory), "test", string(cert), string(key))
	assert.Nil(t, err, "wrong certificate")
	assert.NotEqual(t, [32]byte{}, fingerprint, "empty fingerprint")
	return tlsConfig
}

func TestCertificateWhenInvalid(t *testing.T) {
	_, _, err := rpc.Certificate(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pair accepted")
}

func TestNewListenerWhenDisabled(t *testing.T) {
	l, err := rpc.NewListener(&configuration.HTTPSConfiguration{}, logger.New(fixtures.LogCategory), nil, nil)
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, l, "listener created with no address")

	// stopping a disabled listener is harmless
	l.Stop()
}

func TestNewListenerWhenNoConnectionsAllowed(t *testing.T) {
	_, err := rpc.NewListener(&configuration.HTTPSConfiguration{
		Listen: []string{"127.0.0.1:0"},
	}, logger.New(fixtures.LogCategory), nil, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestListenerServe(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockService(ctl)
	s.EXPECT().Stats().Return(lightning.Stats{Passes: 4}).Times(1)
	s.EXPECT().Processors().Return([]lightning.ProcessorStatus{}).Times(1)

	h := newHandler(s, 5, 1)

	l, err := rpc.NewListener(&configuration.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}, logger.New(fixtures.LogCategory), testTLS(t), h.Mux())
	assert.Nil(t, err, "wrong NewListener")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Stop()

	addresses := l.Addresses()
	assert.Equal(t, 1, len(addresses), "wrong address count")

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: 5 * time.Second,
	}
	resp, err := client.Get("https://" + addresses[0] + rpc.DetailsPath)
	assert.Nil(t, err, "wrong get")
	defer resp.Body.Close()

	var reply rpc.DetailsReply
	err = json.NewDecoder(resp.Body).Decode(&reply)
	assert.Nil(t, err, "wrong decode")
	assert.Equal(t, uint64(4), reply.Counters.Passes, "wrong counters")
}
