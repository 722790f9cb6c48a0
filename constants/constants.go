// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// module indices, part of the error discriminant and the call encoding
const (
	ModuleSystem       = 0
	ModuleFungible     = 1
	ModuleUniques      = 2
	ModuleFnft         = 3
	ModuleProposal     = 4
	ModuleDao          = 5
	ModuleCrowdfunding = 6
	ModulePortal       = 7
	ModuleVesting      = 8
	ModuleDomain       = 9
	ModuleReview       = 10
	ModuleAgreement    = 11
)

// runtime versions checked by the signed extensions
const (
	SpecVersion        = 1
	TransactionVersion = 1
)

// proposal bounds
const (
	DepthLimit   = 2
	BatchMaxSize = 16
	SizeLimit    = BatchMaxSize
)

// DAO bounds
const (
	MaxSignatories = 32
)

// default time to live of a pending proposal, no expire before this
const (
	ProposalTtl = 7 * 24 * time.Hour
)

// vesting
const (
	MinVestedTransfer = 100
)

// block limits
const (
	MaximumBlockWeight     = 1000000
	MaximumExtrinsicLength = 64 * 1024
)

// fee charged per unit of weight in the native currency
const (
	DefaultWeightFee = 0
	DefaultLengthFee = 0
)

// the native currency asset id
const (
	NativeAsset = 0
)

// interval of the local sealer
const (
	DefaultSealInterval = 6 * time.Second
)

// maximum number of items returned by a list query
const (
	MaximumListCount = 100
)
