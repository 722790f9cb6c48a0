// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the pool of extrinsics waiting for a block
//
// signed extrinsics arrive from RPC clients and unsigned ones from the
// off-chain worker, both are checked against the best state on entry and
// kept in arrival order, deduplicated by hash, until a block includes
// them, they stop validating or they expire
package reservoir
