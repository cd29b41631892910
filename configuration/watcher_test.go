// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fixtures"
)

func TestWatcherChangeAndRemove(t *testing.T) {
	fileName := writeConfiguration(t, `return {}`)

	w, err := configuration.NewWatcher(fileName, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "wrong NewWatcher")
	defer w.Stop()

	assert.Nil(t, w.Start(), "wrong Start")

	err = ioutil.WriteFile(fileName, []byte(`return { brand = "x" }`), 0600)
	assert.Nil(t, err, "rewrite configuration")

	select {
	case <-w.Change():
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	// unrelated files in the same directory are ignored
	other := filepath.Join(filepath.Dir(fileName), "other.txt")
	assert.Nil(t, ioutil.WriteFile(other, []byte("x"), 0600), "write other")

	assert.Nil(t, os.Remove(fileName), "remove configuration")

	select {
	case <-w.Remove():
	case <-time.After(5 * time.Second):
		t.Fatal("no remove event")
	}

	assert.Nil(t, w.Stop(), "wrong Stop")
	assert.Nil(t, w.Stop(), "wrong second Stop")
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := configuration.NewWatcher("/nonexistent/lnpayd.conf", logger.New(fixtures.LogCategory))
	assert.NotNil(t, err, "missing file accepted")
}
