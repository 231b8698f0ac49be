// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/ledger"
)

// how often to re-check the ledger against the recorded supply
const auditInterval = 5 * time.Minute

// audit background process
type auditor struct {
	log *logger.L
}

// Run - periodically verify that balances still sum to the supply
func (a *auditor) Run(args interface{}, shutdown <-chan struct{}) {
	a.log = logger.New("auditor")
	a.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(auditInterval):
			err := ledger.CheckSupply()
			if nil != err {
				a.log.Criticalf("audit failed: %s", err)
			} else {
				a.log.Debug("audit passed")
			}
		}
	}
	a.log.Info("stopped")
	a.log.Flush()
}
