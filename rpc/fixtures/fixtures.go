// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/principal"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Principal - a deterministic testnet principal for test data
func Principal(name string) principal.Principal {
	digest := sha3.Sum256([]byte(name))
	p, err := principal.FromIdentifier(true, digest[:])
	if nil != err {
		panic(err)
	}
	return p
}

var certificateOnce sync.Once
var certificatePEM []byte
var keyPEM []byte

func makeCertificate() {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("marketd testing", validUntil, false, nil)
	if nil != err {
		panic(err)
	}
	certificatePEM = cert
	keyPEM = key
}

// Certificate - a throwaway self-signed certificate in PEM form
func Certificate() string {
	certificateOnce.Do(makeCertificate)
	return string(certificatePEM)
}

// Key - the private key matching Certificate
func Key() string {
	certificateOnce.Do(makeCertificate)
	return string(keyPEM)
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
