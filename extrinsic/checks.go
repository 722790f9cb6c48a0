// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package extrinsic

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// common no-op hooks
type base struct{}

func (base) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error) {
	return []byte{}, nil
}

func (base) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	return nil
}

func (base) PostDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo, result error) error {
	return nil
}

func uint32Bytes(n uint32) []byte {
	e := codec.NewEncoder()
	e.Uint32(n)
	return e.Bytes()
}

// CheckSpecVersion - signature commits to the runtime version
type CheckSpecVersion struct {
	base
	Version uint32
}

func (c CheckSpecVersion) Identifier() string { return "CheckSpecVersion" }

func (c CheckSpecVersion) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error) {
	return uint32Bytes(c.Version), nil
}

// CheckTxVersion - signature commits to the transaction format version
type CheckTxVersion struct {
	base
	Version uint32
}

func (c CheckTxVersion) Identifier() string { return "CheckTxVersion" }

func (c CheckTxVersion) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error) {
	return uint32Bytes(c.Version), nil
}

// CheckGenesis - signature commits to the chain
type CheckGenesis struct {
	base
}

func (CheckGenesis) Identifier() string { return "CheckGenesis" }

func (CheckGenesis) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error) {
	h, ok := block.GenesisHash(ctx.Tx, ctx.DB)
	if !ok {
		return nil, fault.InvalidGenesis
	}
	return h[:], nil
}

// CheckMortality - signature commits to the birth block, expires after
// the period
type CheckMortality struct {
	base
}

func (CheckMortality) Identifier() string { return "CheckMortality" }

func (CheckMortality) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error) {
	if extra.Era.IsImmortal() {
		return CheckGenesis{}.AdditionalSigned(ctx, extra)
	}
	h, err := block.HashForBlock(ctx.Tx, ctx.DB, extra.Era.Birth)
	if nil != err {
		return nil, fault.TransactionExpired
	}
	return h[:], nil
}

func (CheckMortality) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	era := x.Signature.Extra.Era
	if era.IsImmortal() {
		return nil
	}
	if ctx.Block < era.Birth || ctx.Block >= era.Birth+era.Period {
		return fault.TransactionExpired
	}
	return nil
}

// CheckNonce - replay protection, the nonce must be exactly the next one
type CheckNonce struct {
	base
}

func (CheckNonce) Identifier() string { return "CheckNonce" }

func (CheckNonce) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	who := x.Signature.Signer
	expected := runtime.Nonce(ctx.Tx, ctx.DB, who)
	nonce := x.Signature.Extra.Nonce
	if nonce < expected {
		return fault.StaleTransaction
	}
	if nonce > expected {
		return fault.FutureTransaction
	}
	runtime.IncrementNonce(ctx.Tx, ctx.DB, who)
	return nil
}

// CheckWeight - keep the block within its weight and length limits
type CheckWeight struct {
	base
}

func (CheckWeight) Identifier() string { return "CheckWeight" }

func (CheckWeight) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	p := ctx.Parameters
	length := uint64(info.Length)
	if length > p.MaximumLength {
		return fault.ExhaustsResources
	}
	s := ctx.BlockState
	if s.Weight+info.Weight > p.MaximumWeight || s.Weight+info.Weight < s.Weight {
		return fault.ExhaustsResources
	}
	s.Weight += info.Weight
	s.Length += length
	return nil
}

// Payer - withdraws fees in the native currency
type Payer interface {
	WithdrawFee(ctx *runtime.Context, who account.AccountId, amount uint64) error
}

// ChargeTransactionPayment - fee plus tip, taken before dispatch and
// kept even if the call fails
type ChargeTransactionPayment struct {
	base
	Payer Payer
}

func (ChargeTransactionPayment) Identifier() string { return "ChargeTransactionPayment" }

// Fee - the fee of an extrinsic before the tip
func Fee(p *runtime.Parameters, info DispatchInfo) uint64 {
	return p.BaseFee + info.Weight*p.WeightFee + uint64(info.Length)*p.LengthFee
}

func (c ChargeTransactionPayment) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	fee := Fee(ctx.Parameters, info)
	total := fee + x.Signature.Extra.Tip
	if total < fee {
		return fault.PaymentFailed
	}
	if 0 == total || nil == c.Payer {
		return nil
	}
	err := c.Payer.WithdrawFee(ctx, x.Signature.Signer, total)
	if nil != err {
		return fault.PaymentFailed
	}
	return nil
}
