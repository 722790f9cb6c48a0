// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// CheckPortalExt - attributes a signed extrinsic to the portal named in
// its extra, whatever call it makes
type CheckPortalExt struct{}

func (CheckPortalExt) Identifier() string { return "CheckPortalExt" }

// the tag is already covered by the encoded extra
func (CheckPortalExt) AdditionalSigned(ctx *runtime.Context, extra *extrinsic.Extra) ([]byte, error) {
	return []byte{}, nil
}

func (CheckPortalExt) PreDispatch(ctx *runtime.Context, x *extrinsic.Extrinsic, info extrinsic.DispatchInfo) error {
	tag := x.Signature.Extra.Portal
	if nil == tag {
		return nil
	}
	if !ctx.Tx.Has(ctx.DB.Portals, tag[:]) {
		return ErrUnknownPortal
	}
	return nil
}

func (CheckPortalExt) PostDispatch(ctx *runtime.Context, x *extrinsic.Extrinsic, info extrinsic.DispatchInfo, result error) error {
	tag := x.Signature.Extra.Portal
	if nil != tag {
		Tag(ctx, PortalId(*tag))
	}
	return nil
}
