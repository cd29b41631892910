// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/lnpayd/fault"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultDatabase = "orders.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "lnpayd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultNetwork     = "bitcoin"
	defaultRPCClients  = 10
	defaultWebhookRate = 1.0 // triggers/second

	defaultFreshnessWindow = 3600 // seconds
	defaultWalletCacheTTL  = 30
	defaultCallTimeout     = 10
	defaultPollInterval    = 30
	defaultInvoiceTTL      = 3600

	// ProcessorKindJSONRPC - the HTTP JSON-RPC processor backend
	ProcessorKindJSONRPC = "jsonrpc"
)

// HTTPSConfiguration - the daemon's own RPC and webhook listener
type HTTPSConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	WebhookToken       string   `gluamapper:"webhook_token" json:"-"`
	WebhookRate        float64  `gluamapper:"webhook_rate" json:"webhook_rate"`
}

// ProcessorConfiguration - one Lightning backend
//
// an entry with missing access details is kept but never selected
type ProcessorConfiguration struct {
	ID            string  `gluamapper:"id" json:"id"`
	Priority      int     `gluamapper:"priority" json:"priority"`
	Kind          string  `gluamapper:"kind" json:"kind"`
	URL           string  `gluamapper:"url" json:"url"`
	Username      string  `gluamapper:"username" json:"username"`
	Password      string  `gluamapper:"password" json:"-"`
	Certificate   string  `gluamapper:"certificate" json:"certificate"`
	PrivateKey    string  `gluamapper:"private_key" json:"private_key"`
	CACertificate string  `gluamapper:"ca_certificate" json:"ca_certificate"`
	Network       string  `gluamapper:"network" json:"network"`
	RateLimit     float64 `gluamapper:"rate_limit" json:"rate_limit"`
}

// Configuration - everything read from the file
type Configuration struct {
	DataDirectory       string                   `gluamapper:"data_directory" json:"data_directory"`
	PidFile             string                   `gluamapper:"pidfile" json:"pidfile"`
	Network             string                   `gluamapper:"network" json:"network"`
	Brand               string                   `gluamapper:"brand" json:"brand"`
	LabelMode           string                   `gluamapper:"label_mode" json:"label_mode"`
	ProcessorPreference []string                 `gluamapper:"processor_preference" json:"processor_preference"`
	FreshnessWindow     int                      `gluamapper:"freshness_window" json:"freshness_window"`
	WalletCacheTTL      int                      `gluamapper:"wallet_cache_ttl" json:"wallet_cache_ttl"`
	CallTimeout         int                      `gluamapper:"call_timeout" json:"call_timeout"`
	PollInterval        int                      `gluamapper:"poll_interval" json:"poll_interval"`
	InvoiceTTL          int                      `gluamapper:"invoice_ttl" json:"invoice_ttl"`
	Database            string                   `gluamapper:"database" json:"database"`
	HTTPSRPC            HTTPSConfiguration       `gluamapper:"https_rpc" json:"https_rpc"`
	Processors          []ProcessorConfiguration `gluamapper:"processors" json:"processors"`
	Logging             logger.Configuration     `gluamapper:"logging" json:"logging"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Freshness - how far back reported payments are considered
func (c *Configuration) Freshness() time.Duration { return seconds(c.FreshnessWindow) }

// CacheTTL - how long wallet state is served from the cache
func (c *Configuration) CacheTTL() time.Duration { return seconds(c.WalletCacheTTL) }

// Timeout - the bound on every processor call
func (c *Configuration) Timeout() time.Duration { return seconds(c.CallTimeout) }

// Poll - reconciliation cadence
func (c *Configuration) Poll() time.Duration { return seconds(c.PollInterval) }

// InvoiceExpiry - default invoice lifetime
func (c *Configuration) InvoiceExpiry() time.Duration { return seconds(c.InvoiceTTL) }

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory:   defaultDataDirectory,
		PidFile:         "", // no PidFile by default
		Network:         defaultNetwork,
		LabelMode:       "brand",
		FreshnessWindow: defaultFreshnessWindow,
		WalletCacheTTL:  defaultWalletCacheTTL,
		CallTimeout:     defaultCallTimeout,
		PollInterval:    defaultPollInterval,
		InvoiceTTL:      defaultInvoiceTTL,
		Database:        defaultDatabase,

		HTTPSRPC: HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
			WebhookRate:        defaultWebhookRate,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Network = strings.ToLower(options.Network)

	for _, n := range []*int{
		&options.FreshnessWindow,
		&options.WalletCacheTTL,
		&options.CallTimeout,
		&options.PollInterval,
		&options.InvoiceTTL,
	} {
		if *n <= 0 {
			return nil, fmt.Errorf("%w: durations must be positive", fault.ErrInvalidExpiry)
		}
	}

	seen := make(map[string]struct{}, len(options.Processors))
	for i := range options.Processors {
		p := &options.Processors[i]
		if "" == p.ID {
			return nil, fmt.Errorf("processor: %d has no id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", fault.ErrDuplicateProcessor, p.ID)
		}
		seen[p.ID] = struct{}{}

		if "" == p.Kind {
			p.Kind = ProcessorKindJSONRPC
		}
		if ProcessorKindJSONRPC != p.Kind {
			return nil, fmt.Errorf("%w: %q", fault.ErrInvalidProcessorKind, p.Kind)
		}
		if "" == p.Network {
			p.Network = options.Network
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.HTTPSRPC.Certificate,
		&options.HTTPSRPC.PrivateKey,
		&options.Logging.Directory,
	}
	if "memory" != options.Database {
		mustBeAbsolute = append(mustBeAbsolute, &options.Database)
	}
	for _, f := range mustBeAbsolute {
		*f = EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for i := range options.Processors {
		p := &options.Processors[i]
		optionalAbsolute = append(optionalAbsolute, &p.Certificate, &p.PrivateKey, &p.CACertificate)
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// create log directory if it does not already exist
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// EnsureAbsolute - if path is relative then prefix it with directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
