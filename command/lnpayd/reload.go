// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/lightning"
)

// background process rebuilding the processor registry whenever the
// configuration file is written
//
// only the processor list is reloaded, other settings need a restart
type reloader struct {
	log               *logger.L
	configurationFile string
	watcher           *configuration.Watcher
	service           *lightning.Service
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-r.watcher.Change():
			r.reload()

		case <-r.watcher.Remove():
			log.Warnf("configuration file: %q removed, keeping current processors", r.configurationFile)
		}
	}

	if err := r.watcher.Stop(); nil != err {
		log.Warnf("watcher stop error: %s", err)
	}
	log.Info("stopped")
}

func (r *reloader) reload() {
	log := r.log

	options, err := configuration.GetConfiguration(r.configurationFile)
	if nil != err {
		log.Errorf("reload: %q  error: %s", r.configurationFile, err)
		return
	}

	registry, err := buildRegistry(options)
	if nil != err {
		log.Errorf("reload: %q  registry error: %s", r.configurationFile, err)
		return
	}

	if err := r.service.Refresh(registry); nil != err {
		log.Errorf("refresh error: %s", err)
		_ = registry.Close()
		return
	}

	log.Infof("reloaded processors: %d", len(registry.List()))
}
