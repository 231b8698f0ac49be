// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/marketd/principal"
)

// decode a required principal flag
func checkPrincipal(name string, value string) (principal.Principal, error) {
	if "" == value {
		return principal.Principal{}, fmt.Errorf("missing %s", name)
	}
	p, err := principal.FromBase58(value)
	if nil != err {
		return principal.Principal{}, fmt.Errorf("invalid %s: %q error: %s", name, value, err)
	}
	return p, nil
}
