// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package extrinsic

import (
	"github.com/bitmark-inc/ipchaind/runtime"
)

// DispatchInfo - what an extension knows about the call
type DispatchInfo struct {
	Weight uint64
	Length int
}

// SignedExtension - a stage of the signed transaction pipeline
//
// PreDispatch runs before the call and a failure rejects the extrinsic,
// PostDispatch runs after the call whatever its result
type SignedExtension interface {
	Identifier() string
	AdditionalSigned(ctx *runtime.Context, extra *Extra) ([]byte, error)
	PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error
	PostDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo, result error) error
}

// Pipeline - the ordered signed extensions
type Pipeline []SignedExtension

// Identifiers - names of the extensions in order
func (p Pipeline) Identifiers() []string {
	ids := make([]string, len(p))
	for i, ext := range p {
		ids[i] = ext.Identifier()
	}
	return ids
}

// AdditionalSigned - implicit data of every extension, in order
func (p Pipeline) AdditionalSigned(ctx *runtime.Context, extra *Extra) ([][]byte, error) {
	result := make([][]byte, 0, len(p))
	for _, ext := range p {
		a, err := ext.AdditionalSigned(ctx, extra)
		if nil != err {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// PreDispatch - first failure stops the pipeline
func (p Pipeline) PreDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo) error {
	for _, ext := range p {
		err := ext.PreDispatch(ctx, x, info)
		if nil != err {
			return err
		}
	}
	return nil
}

// PostDispatch - first failure stops the pipeline
func (p Pipeline) PostDispatch(ctx *runtime.Context, x *Extrinsic, info DispatchInfo, result error) error {
	for _, ext := range p {
		err := ext.PostDispatch(ctx, x, info, result)
		if nil != err {
			return err
		}
	}
	return nil
}
