// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/network"
)

func TestValid(t *testing.T) {
	assert.True(t, network.Valid(network.Live), "wrong Valid")
	assert.True(t, network.Valid(network.Testing), "wrong Valid")
	assert.True(t, network.Valid(network.Local), "wrong Valid")
	assert.False(t, network.Valid(""), "wrong Valid")
	assert.False(t, network.Valid("mainnet"), "wrong Valid")
}
