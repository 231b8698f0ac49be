// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/rpc/data"
	"github.com/bitmark-inc/marketd/rpc/markets"
	"github.com/bitmark-inc/marketd/rpc/node"
	"github.com/bitmark-inc/marketd/rpc/researchers"
	"github.com/bitmark-inc/marketd/rpc/token"
)

// Create - a new RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(token.New(log, mode.Is, mode.IsTesting))
	_ = server.Register(data.New(log, mode.Is, mode.IsTesting))
	_ = server.Register(researchers.New(log, mode.Is, mode.IsTesting))
	_ = server.Register(markets.New(log, mode.Is, mode.IsTesting))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
