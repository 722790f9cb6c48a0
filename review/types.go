// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/dao"
)

// rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Project - something that can be reviewed
type Project struct {
	Id        uint64            `json:"id"`
	Owner     account.AccountId `json:"owner"`
	Metadata  dao.Metadata      `json:"metadata"`
	CreatedAt uint64            `json:"createdAt"`
}

func (p Project) Encode(e *codec.Encoder) {
	e.Uint64(p.Id)
	p.Owner.Encode(e)
	e.Fixed(p.Metadata[:])
	e.Uint64(p.CreatedAt)
}

func (p *Project) Decode(d *codec.Decoder) {
	p.Id = d.Uint64()
	p.Owner.Decode(d)
	d.Fixed(p.Metadata[:])
	p.CreatedAt = d.Uint64()
}

// Review - a rated opinion of a project, the content lives off chain
type Review struct {
	Id        uint64            `json:"id"`
	Project   uint64            `json:"project"`
	Author    account.AccountId `json:"author"`
	Rating    uint8             `json:"rating"`
	Content   dao.Metadata      `json:"content"`
	Upvotes   uint32            `json:"upvotes"`
	CreatedAt uint64            `json:"createdAt"`
}

func (r Review) Encode(e *codec.Encoder) {
	e.Uint64(r.Id)
	e.Uint64(r.Project)
	r.Author.Encode(e)
	e.Uint8(r.Rating)
	e.Fixed(r.Content[:])
	e.Uint32(r.Upvotes)
	e.Uint64(r.CreatedAt)
}

func (r *Review) Decode(d *codec.Decoder) {
	r.Id = d.Uint64()
	r.Project = d.Uint64()
	r.Author.Decode(d)
	r.Rating = d.Uint8()
	d.Fixed(r.Content[:])
	r.Upvotes = d.Uint32()
	r.CreatedAt = d.Uint64()
}
