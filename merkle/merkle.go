// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/ipchaind/runtime"
)

// FullMerkleTree - compute the merkle tree of a set of extrinsic hashes
//
// structure is:
//   1. N * extrinsic hashes
//   2. level 1..m hashes
//   3. merkle root hash
func FullMerkleTree(ids []runtime.Hash) []runtime.Hash {

	// compute length of ids + all tree levels including root
	idCount := len(ids)

	totalLength := 1 // all ids + space for the final root
	for n := idCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	// add initial ids
	tree := make([]runtime.Hash, totalLength)
	copy(tree[:], ids)

	n := idCount
	j := 0
	for workLength := idCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			b := make([]byte, 0, 64)
			b = append(b, tree[j][:]...)
			b = append(b, tree[k][:]...)
			tree[n] = runtime.HashOf(b)
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - last element of the full tree, zero hash for no ids
func Root(ids []runtime.Hash) runtime.Hash {
	if 0 == len(ids) {
		return runtime.Hash{}
	}
	tree := FullMerkleTree(ids)
	return tree[len(tree)-1]
}
