// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io/ioutil"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/rpc/certificate"
	"github.com/bitmark-inc/marketd/rpc/handler"
	"github.com/bitmark-inc/marketd/rpc/listeners"
	"github.com/bitmark-inc/marketd/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "http_rpc"
)

// connection count for both front ends
var connectionCountRPC counter.Counter

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC front ends
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	certificatePEM, keyPEM, err := readCertificatePair(rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, certificatePEM, keyPEM)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	err = initialiseHTTPS(httpsConfiguration, version)
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// load a PEM certificate and key pair from their files
func readCertificatePair(certificateFileName string, keyFileName string) (string, string, error) {
	certificatePEM, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		return "", "", err
	}
	keyPEM, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		return "", "", err
	}
	return string(certificatePEM), string(keyPEM), nil
}

// start the HTTPS bridge when configured
func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, version string) error {

	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil
	}

	certificatePEM, keyPEM, err := readCertificatePair(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	tlsConfiguration, fingerprint, err := certificate.Get(log, httpsName, certificatePEM, keyPEM)
	if nil != err {
		return err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	hdlr := handler.New(
		log,
		server.Create(log, version, &connectionCountRPC),
		time.Now().UTC(),
		version,
		configuration.MaximumConnections,
		&connectionCountRPC,
	)

	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfiguration, hdlr)
	if nil != err {
		return err
	}
	if nil == httpsListener {
		return nil
	}

	return httpsListener.Serve()
}
