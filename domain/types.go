// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package domain

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/dao"
)

// MaxNameLength - bytes in the longest domain name
const MaxNameLength = 64

// Domain - a named namespace owned by an account
type Domain struct {
	Name      string            `json:"name"`
	Owner     account.AccountId `json:"owner"`
	Metadata  *dao.Metadata     `json:"metadata,omitempty"`
	CreatedAt uint64            `json:"createdAt"`
}

func (dm Domain) Encode(e *codec.Encoder) {
	e.String(dm.Name)
	dm.Owner.Encode(e)
	if e.Option(nil != dm.Metadata) {
		e.Fixed(dm.Metadata[:])
	}
	e.Uint64(dm.CreatedAt)
}

func (dm *Domain) Decode(d *codec.Decoder) {
	dm.Name = d.String()
	dm.Owner.Decode(d)
	dm.Metadata = nil
	if d.Option() {
		dm.Metadata = &dao.Metadata{}
		d.Fixed(dm.Metadata[:])
	}
	dm.CreatedAt = d.Uint64()
}

// ValidName - lower case letters, digits, hyphens and dots with no
// separator at either end or next to another
func ValidName(name string) bool {
	n := len(name)
	if 0 == n || n > MaxNameLength {
		return false
	}
	for i := 0; i < n; i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case '-' == c || '.' == c:
			if 0 == i || n-1 == i || '-' == name[i-1] || '.' == name[i-1] {
				return false
			}
		default:
			return false
		}
	}
	return true
}
