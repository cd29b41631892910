// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fault"
)

const (
	httpsLogName       = "https_rpc"
	minConnectionCount = 1
	readWriteTimeout   = 30 * time.Second
	keepAlivePeriod    = 3 * time.Minute
	shutdownTimeout    = 5 * time.Second
)

// Listener - HTTPS servers on each configured address
type Listener struct {
	sync.Mutex

	log             *logger.L
	listenIPAndPort []string
	tlsConfig       *tls.Config
	handler         http.Handler
	servers         []*http.Server
}

// NewListener - validate the configuration and prepare the servers
//
// returns nil, nil when no listen address is configured
func NewListener(
	configuration *configuration.HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	handler http.Handler,
) (*Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	return &Listener{
		log:             log,
		listenIPAndPort: configuration.Listen,
		tlsConfig:       tlsConfig,
		handler:         handler,
	}, nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}

// Serve - bind every address then serve each in the background
func (l *Listener) Serve() error {
	l.Lock()
	defer l.Unlock()

	l.tlsConfig.NextProtos = []string{"http/1.1"}

	for _, listen := range l.listenIPAndPort {
		l.log.Infof("starting server: %s on: %q", httpsLogName, listen)
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			l.log.Errorf("listen on: %q  error: %s", listen, err)
			return err
		}

		s := &http.Server{
			Addr:           ln.Addr().String(),
			Handler:        l.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		l.servers = append(l.servers, s)

		tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, l.tlsConfig)
		go func(addr string) {
			err := s.Serve(tlsListener)
			if nil != err && http.ErrServerClosed != err {
				l.log.Errorf("server on: %q  error: %s", addr, err)
			}
		}(s.Addr)
	}

	return nil
}

// Addresses - the bound addresses, useful when a port of zero was configured
func (l *Listener) Addresses() []string {
	l.Lock()
	defer l.Unlock()

	addresses := make([]string, 0, len(l.servers))
	for _, s := range l.servers {
		addresses = append(addresses, s.Addr)
	}
	return addresses
}

// Stop - shut down all servers
func (l *Listener) Stop() {
	if nil == l {
		return
	}

	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range l.servers {
		if err := s.Shutdown(ctx); nil != err {
			l.log.Warnf("shutdown: %q  error: %s", s.Addr, err)
		}
	}
	l.servers = nil
}
