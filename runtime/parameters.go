// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/bitmark-inc/ipchaind/constants"
)

// Parameters - tunable limits of the runtime
type Parameters struct {
	ProposalTtl       uint64 `gluamapper:"proposal_ttl" json:"proposal_ttl"`
	DepthLimit        int    `gluamapper:"depth_limit" json:"depth_limit"`
	SizeLimit         int    `gluamapper:"size_limit" json:"size_limit"`
	MaxSignatories    int    `gluamapper:"max_signatories" json:"max_signatories"`
	MinVestedTransfer uint64 `gluamapper:"min_vested_transfer" json:"min_vested_transfer"`
	MaximumWeight     uint64 `gluamapper:"maximum_weight" json:"maximum_weight"`
	MaximumLength     uint64 `gluamapper:"maximum_length" json:"maximum_length"`
	BaseFee           uint64 `gluamapper:"base_fee" json:"base_fee"`
	WeightFee         uint64 `gluamapper:"weight_fee" json:"weight_fee"`
	LengthFee         uint64 `gluamapper:"length_fee" json:"length_fee"`
}

// DefaultParameters - the values used when the configuration is silent
func DefaultParameters() *Parameters {
	return &Parameters{
		ProposalTtl:       uint64(constants.ProposalTtl.Seconds()),
		DepthLimit:        constants.DepthLimit,
		SizeLimit:         constants.SizeLimit,
		MaxSignatories:    constants.MaxSignatories,
		MinVestedTransfer: constants.MinVestedTransfer,
		MaximumWeight:     constants.MaximumBlockWeight,
		MaximumLength:     constants.MaximumExtrinsicLength,
		BaseFee:           0,
		WeightFee:         constants.DefaultWeightFee,
		LengthFee:         constants.DefaultLengthFee,
	}
}
