// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package jsonrpc - processor backend speaking JSON-RPC over HTTP to a
// Lightning node or payment gateway
package jsonrpc

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/lnpayd/counter"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/processor"
)

const (
	defaultRateLimit   = 10.0 // calls/second
	defaultHTTPTimeout = 30 * time.Second
)

// Configuration - access details for one processor
type Configuration struct {
	URL           string  `gluamapper:"url" json:"url"`
	Username      string  `gluamapper:"username" json:"username"`
	Password      string  `gluamapper:"password" json:"password"`
	Certificate   string  `gluamapper:"certificate" json:"certificate"`
	PrivateKey    string  `gluamapper:"private_key" json:"private_key"`
	CACertificate string  `gluamapper:"ca_certificate" json:"ca_certificate"`
	Network       string  `gluamapper:"network" json:"network"`
	RateLimit     float64 `gluamapper:"rate_limit" json:"rate_limit"`
}

// Connector - creates backends for one processor
type Connector struct {
	log      *logger.L
	url      string
	username string
	password string
	network  string
	client   *http.Client
	limiter  *rate.Limiter
	id       counter.Counter
	now      func() time.Time
}

// New - validate the configuration and prepare the HTTP client
//
// missing access details give fault.ErrProcessorNotConfigured
func New(configuration Configuration, log *logger.L) (*Connector, error) {
	if nil == log {
		return nil, fault.ErrNotInitialised
	}
	if "" == configuration.URL || "" == configuration.Password {
		return nil, fault.ErrProcessorNotConfigured
	}

	transport := &http.Transport{}

	if "" != configuration.Certificate {
		keyPair, err := tls.LoadX509KeyPair(configuration.Certificate, configuration.PrivateKey)
		if nil != err {
			return nil, fmt.Errorf("%w: %s", fault.ErrProcessorNotConfigured, err)
		}

		certificatePool := x509.NewCertPool()

		data, err := ioutil.ReadFile(configuration.CACertificate)
		if nil != err {
			log.Criticalf("failed to read certificate from: %q", configuration.CACertificate)
			return nil, fmt.Errorf("%w: %s", fault.ErrProcessorNotConfigured, err)
		}

		if !certificatePool.AppendCertsFromPEM(data) {
			log.Criticalf("failed to parse certificate from: %q", configuration.CACertificate)
			return nil, fault.ErrProcessorNotConfigured
		}

		transport.TLSClientConfig = &tls.Config{
			Certificates:       []tls.Certificate{keyPair},
			RootCAs:            certificatePool,
			InsecureSkipVerify: false,
			MinVersion:         tls.VersionTLS12,
		}
	}

	limit := configuration.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}

	c := &Connector{
		log:      log,
		url:      configuration.URL,
		username: configuration.Username,
		password: configuration.Password,
		network:  configuration.Network,
		client: &http.Client{
			Transport: transport,
			Timeout:   defaultHTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		now:     time.Now,
	}
	return c, nil
}

type infoReply struct {
	Version string `json:"version"`
	Network string `json:"network"`
}

// Connect - handshake with the remote and check it is on the expected network
func (c *Connector) Connect(ctx context.Context) (processor.Backend, error) {
	c.log.Info("connecting…")

	var info infoReply
	if err := c.call(ctx, "getinfo", struct{}{}, &info); nil != err {
		c.log.Warnf("getinfo error: %s", err)
		return nil, err
	}

	if "" != c.network && info.Network != c.network {
		c.log.Errorf("network mismatch: expected: %q  actual: %q", c.network, info.Network)
		return nil, fmt.Errorf("%w: remote network %q", fault.ErrInvalidNetwork, info.Network)
	}

	c.log.Infof("connected to version: %q  network: %q", info.Version, info.Network)

	return &Backend{
		connector: c,
	}, nil
}
