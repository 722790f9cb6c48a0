// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
)

// ProjectCreated - a new project
type ProjectCreated struct {
	Id    uint64            `json:"id"`
	Owner account.AccountId `json:"owner"`
}

func (ev ProjectCreated) EventName() string { return "ProjectCreated" }
func (ev ProjectCreated) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	ev.Owner.Encode(e)
}

// ReviewCreated - a new review of a project
type ReviewCreated struct {
	Id      uint64            `json:"id"`
	Project uint64            `json:"project"`
	Author  account.AccountId `json:"author"`
	Rating  uint8             `json:"rating"`
}

func (ev ReviewCreated) EventName() string { return "ReviewCreated" }
func (ev ReviewCreated) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	e.Uint64(ev.Project)
	ev.Author.Encode(e)
	e.Uint8(ev.Rating)
}

// ReviewUpvoted - one more upvote
type ReviewUpvoted struct {
	Id      uint64            `json:"id"`
	Who     account.AccountId `json:"who"`
	Upvotes uint32            `json:"upvotes"`
}

func (ev ReviewUpvoted) EventName() string { return "ReviewUpvoted" }
func (ev ReviewUpvoted) Encode(e *codec.Encoder) {
	e.Uint64(ev.Id)
	ev.Who.Encode(e)
	e.Uint32(ev.Upvotes)
}
