// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++          = concatenation of byte data
// 3. principal   = marketplace principal (variant byte ++ 32 byte identifier)
// 4. quantity    = big endian uint64 (8 bytes)
// 5. *others*    = byte values of various length
//
// Tokens:
//
//   B ++ principal             - token balance of a principal
//                                data: quantity
//   S ++ "SUPPLY"              - total of all minted tokens
//                                data: quantity
//
// Data records:
//
//   D ++ owner                 - registered data record for an owner
//                                data: price(quantity) ++ available(one byte) ++ fingerprint
//
// Researchers:
//
//   R ++ researcher            - researcher registration status
//                                data: status(one byte: bit 0 = registered, bit 1 = verified)
//
// Access grants:
//
//   G ++ researcher ++ owner   - purchased access to a data record
//                                data: 0x01
//
// Testing:
//
//   Z ++ key                   - testing data
package storage
