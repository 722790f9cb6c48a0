// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the networks a node can run
package chain

// names of all chains
const (
	IPChain = "ipchain"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case IPChain, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - chains where test only features are allowed
func IsTesting(name string) bool {
	return Testing == name || Local == name
}

// SealsLocally - chains whose blocks are produced by the node itself
// rather than by the external block producer
func SealsLocally(name string) bool {
	return Local == name
}
