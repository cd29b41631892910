// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/lnpayd/configuration"
	"github.com/bitmark-inc/lnpayd/fault"
	"github.com/bitmark-inc/lnpayd/invoice"
	"github.com/bitmark-inc/lnpayd/processor"
)

func testConfiguration() *configuration.Configuration {
	return &configuration.Configuration{
		Network:             "bitcoin",
		Brand:               "Shop",
		LabelMode:           "brand_and_order_number",
		ProcessorPreference: []string{"beta", "alpha"},
		FreshnessWindow:     600,
		WalletCacheTTL:      20,
		CallTimeout:         5,
		InvoiceTTL:          900,
		Processors: []configuration.ProcessorConfiguration{
			{
				ID:       "alpha",
				Priority: 2,
				Kind:     configuration.ProcessorKindJSONRPC,
				URL:      "http://127.0.0.1:1/rpc",
				Password: "secret",
				Network:  "bitcoin",
			},
			{
				ID:       "beta",
				Priority: 1,
				Kind:     configuration.ProcessorKindJSONRPC,
				URL:      "http://127.0.0.1:2/rpc",
				Network:  "bitcoin",
			},
		},
	}
}

func TestBuildRegistry(t *testing.T) {
	registry, err := buildRegistry(testConfiguration())
	assert.Nil(t, err, "wrong buildRegistry")
	defer registry.Close()

	list := registry.List()
	assert.Equal(t, 2, len(list), "wrong processor count")
	assert.Equal(t, processor.ID("beta"), list[0].ID(), "wrong first processor")
	assert.Equal(t, processor.ID("alpha"), list[1].ID(), "wrong second processor")

	assert.True(t, registry.IsConfigured("alpha"), "alpha not configured")
	assert.False(t, registry.IsConfigured("beta"), "beta without password configured")

	candidates := processor.Candidates(registry, []processor.ID{"beta", "alpha"})
	assert.Equal(t, 1, len(candidates), "wrong candidate count")
	assert.Equal(t, processor.ID("alpha"), candidates[0].ID(), "wrong candidate")
}

func TestBuildRegistryWhenCertificateMissing(t *testing.T) {
	options := testConfiguration()
	options.Processors[0].Certificate = "/nonexistent/client.crt"
	options.Processors[0].PrivateKey = "/nonexistent/client.key"

	registry, err := buildRegistry(options)
	assert.Nil(t, err, "wrong buildRegistry")
	assert.False(t, registry.IsConfigured("alpha"), "processor with unreadable certificate configured")
}

func TestBuildRegistryWhenDuplicate(t *testing.T) {
	options := testConfiguration()
	options.Processors[1].ID = "alpha"

	_, err := buildRegistry(options)
	assert.True(t, errors.Is(err, fault.ErrDuplicateProcessor), "wrong error")
}

func TestBuildSettings(t *testing.T) {
	settings, err := buildSettings(testConfiguration())
	assert.Nil(t, err, "wrong buildSettings")

	assert.Equal(t, "bitcoin", settings.Network, "wrong network")
	assert.Equal(t, "Shop", settings.Brand, "wrong brand")
	assert.Equal(t, invoice.LabelBrandAndOrderNumber, settings.LabelMode, "wrong label mode")
	assert.Equal(t, []processor.ID{"beta", "alpha"}, settings.Preference, "wrong preference")
	assert.Equal(t, 10*time.Minute, settings.FreshnessWindow, "wrong freshness window")
	assert.Equal(t, 20*time.Second, settings.WalletCacheTTL, "wrong cache ttl")
	assert.Equal(t, 5*time.Second, settings.CallTimeout, "wrong call timeout")
	assert.Equal(t, 15*time.Minute, settings.InvoiceTTL, "wrong invoice ttl")
}

func TestBuildSettingsWhenLabelModeInvalid(t *testing.T) {
	options := testConfiguration()
	options.LabelMode = "fancy"

	_, err := buildSettings(options)
	assert.True(t, errors.Is(err, fault.ErrInvalidLabelMode), "wrong error")
}
