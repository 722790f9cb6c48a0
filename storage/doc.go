// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage maintains the on-disk world state
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. account      = 32 byte account id
// 5. asset id     = big endian uint32 (4 bytes)
// 6. count        = successive index value as big endian uint64 (8 bytes)
// 7. *others*     = codec encoded records
//
// System:
//
//   H ++ block number          - block header
//   h ++ block hash            - block number
//   E ++ block number          - event log of the block
//   n ++ account               - account nonce
//   x ++ name                  - chain metadata (best block, genesis hash)
//   # ++ name                  - allocation counters
//
// Fungible / uniques:
//
//   a ++ asset id              - asset details
//   b ++ asset id ++ account   - free balance
//   r ++ asset id ++ account ++ bucket - named reserve
//   l ++ asset id ++ account ++ lock id - lock
//   c ++ class id              - class details
//   i ++ class id ++ instance  - instance owner
//
// F-NFT:
//
//   C ++ collection id         - collection
//   I ++ fingerprint           - item
//   F ++ fingerprint ++ account - fraction
//   J ++ collection id ++ fingerprint - items of a collection
//   N ++ asset id              - fingerprint of a fraction side token
//
// Proposals / DAO:
//
//   P ++ proposal id           - proposal
//   Q ++ author ++ count       - proposals by creator, insertion order
//   q ++ proposal id           - creator index key
//   D ++ dao id                - DAO
//   K ++ dao key               - dao id
//
// Crowdfunding:
//
//   S ++ sale id               - sale
//   T ++ sale id ++ account    - contribution
//   U ++ status ++ sale id     - sales by status
//   V ++ time ++ sale id ++ kind - activation / termination schedule
//
// Portal:
//
//   W ++ portal id             - portal
//   O ++ owner                 - portal id
//   G ++ portal id             - delegate
//   X ++ extrinsic hash        - portal id of a signed exec
//   Y ++ block number ++ portal id - extrinsic indices tagged to the portal
//   z ++ portal id ++ schedule id - postponed call
//   Z ++ due block ++ portal id ++ schedule id - postponed call due index
//
// Others:
//
//   v ++ account               - vesting plan
//   d ++ domain id             - domain
//   p ++ project id            - project
//   w ++ review id             - review
//   u ++ review id ++ account  - upvote
//   g ++ agreement id          - contract agreement
package storage
