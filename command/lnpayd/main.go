// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/background"
	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/lightning"
	"github.com/bitmark-inc/lnpayd/rpc"
	"github.com/bitmark-inc/lnpayd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// requests may try several processors in turn
const requestTimeoutFactor = 4

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("network: %s", theConfiguration.Network)
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "HTTPSRPC", theConfiguration.HTTPSRPC)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Open(theConfiguration.Database, logger.New("storage"))
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	settings, err := buildSettings(theConfiguration)
	if nil != err {
		log.Criticalf("settings error: %s", err)
		exitwithstatus.Message("settings error: %s", err)
	}

	registry, err := buildRegistry(theConfiguration)
	if nil != err {
		log.Criticalf("processor registry error: %s", err)
		exitwithstatus.Message("processor registry error: %s", err)
	}

	log.Info("initialise lightning service")
	service, err := lightning.New(logger.New("lightning"), settings, store, registry)
	if nil != err {
		log.Criticalf("lightning initialise error: %s", err)
		exitwithstatus.Message("lightning initialise error: %s", err)
	}
	defer service.Close()

	// warm up connections, failures are retried on first use
	_ = service.Connect(context.Background())

	// start up the rpc listener
	requestTimeout := requestTimeoutFactor * theConfiguration.Timeout()
	listener, err := startRPC(theConfiguration, service, requestTimeout)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer listener.Stop()

	// configuration reload
	watcher, err := configuration.NewWatcher(configurationFile, logger.New("watcher"))
	if nil != err {
		log.Criticalf("watcher initialise error: %s", err)
		exitwithstatus.Message("watcher initialise error: %s", err)
	}
	if err = watcher.Start(); nil != err {
		log.Criticalf("watcher start error: %s", err)
		exitwithstatus.Message("watcher start error: %s", err)
	}

	processes := background.Start(background.Processes{
		rpc.NewPoller(logger.New("poller"), service, theConfiguration.Poll(), requestTimeout),
		&reloader{
			log:               logger.New("reload"),
			configurationFile: configurationFile,
			watcher:           watcher,
			service:           service,
		},
	}, nil)
	defer processes.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// start the HTTPS listener, nil when no address is configured
func startRPC(theConfiguration *configuration.Configuration, service *lightning.Service, requestTimeout time.Duration) (*rpc.Listener, error) {
	https := &theConfiguration.HTTPSRPC
	log := logger.New("rpc")

	if 0 == len(https.Listen) {
		log.Info("rpc listener disabled")
		return nil, nil
	}

	certificate, err := ioutil.ReadFile(https.Certificate)
	if nil != err {
		return nil, err
	}
	key, err := ioutil.ReadFile(https.PrivateKey)
	if nil != err {
		return nil, err
	}

	tlsConfig, fingerprint, err := rpc.Certificate(log, "https_rpc", string(certificate), string(key))
	if nil != err {
		return nil, err
	}
	log.Infof("https_rpc: SHA3-256 fingerprint: %x", fingerprint)

	if "" == https.WebhookToken {
		log.Warn("webhook token not set, webhooks are not authenticated")
	}

	handler := rpc.NewHandler(
		log,
		rpc.CreateServer(log, service, requestTimeout),
		service,
		rpc.HandlerOptions{
			Version:            version,
			MaximumConnections: https.MaximumConnections,
			WebhookToken:       https.WebhookToken,
			WebhookRate:        https.WebhookRate,
			Timeout:            requestTimeout,
		},
	)

	listener, err := rpc.NewListener(https, log, tlsConfig, handler.Mux())
	if nil != err {
		return nil, err
	}

	if err := listener.Serve(); nil != err {
		return nil, err
	}
	return listener, nil
}
