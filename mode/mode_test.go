// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/network"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
)

func TestModeTransitions(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := mode.Initialise(network.Testing)
	assert.Nil(t, err, "wrong Initialise")
	defer mode.Finalise()

	assert.True(t, mode.Is(mode.Initialising), "wrong initial mode")
	assert.True(t, mode.IsTesting(), "wrong testing flag")
	assert.Equal(t, network.Testing, mode.NetworkName(), "wrong network")

	mode.Set(mode.Normal)
	assert.True(t, mode.Is(mode.Normal), "wrong mode")
	assert.True(t, mode.IsNot(mode.Stopped), "wrong mode")
	assert.Equal(t, "Normal", mode.String(), "wrong mode string")

	mode.Set(mode.Stopped)
	assert.True(t, mode.Is(mode.Stopped), "wrong mode")
}

func TestModeDoubleInitialise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := mode.Initialise(network.Local)
	assert.Nil(t, err, "wrong Initialise")
	defer mode.Finalise()

	err = mode.Initialise(network.Local)
	assert.Equal(t, fault.AlreadyInitialised, err, "wrong error")
}

func TestModeInvalidNetwork(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := mode.Initialise("no-such-network")
	assert.Equal(t, fault.InvalidNetwork, err, "wrong error")
}
