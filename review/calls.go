// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/runtime"
)

// review functions
const (
	FnCreateProject = 0
	FnCreateReview  = 1
	FnUpvote        = 2
)

const moduleName = "review"

// ProjectArgs - arguments of create_project
type ProjectArgs struct {
	Metadata dao.Metadata
}

func (a ProjectArgs) Encode(e *codec.Encoder) {
	e.Fixed(a.Metadata[:])
}

func (a *ProjectArgs) Decode(d *codec.Decoder) {
	d.Fixed(a.Metadata[:])
}

// ReviewArgs - arguments of create_review
type ReviewArgs struct {
	Project uint64
	Rating  uint8
	Content dao.Metadata
}

func (a ReviewArgs) Encode(e *codec.Encoder) {
	e.Uint64(a.Project)
	e.Uint8(a.Rating)
	e.Fixed(a.Content[:])
}

func (a *ReviewArgs) Decode(d *codec.Decoder) {
	a.Project = d.Uint64()
	a.Rating = d.Uint8()
	d.Fixed(a.Content[:])
}

// UpvoteArgs - arguments of upvote
type UpvoteArgs struct {
	Project uint64
	Review  uint64
}

func (a UpvoteArgs) Encode(e *codec.Encoder) {
	e.Uint64(a.Project)
	e.Uint64(a.Review)
}

func (a *UpvoteArgs) Decode(d *codec.Decoder) {
	a.Project = d.Uint64()
	a.Review = d.Uint64()
}

// Register - add the review calls to a dispatcher
func Register(d *runtime.Dispatcher) {
	d.Register(constants.ModuleReview, moduleName, FnCreateProject, runtime.Function{
		Name:    "create_project",
		Weight:  10000,
		Handler: createProject,
	})
	d.Register(constants.ModuleReview, moduleName, FnCreateReview, runtime.Function{
		Name:    "create_review",
		Weight:  10000,
		Handler: createReview,
	})
	d.Register(constants.ModuleReview, moduleName, FnUpvote, runtime.Function{
		Name:    "upvote",
		Weight:  5000,
		Handler: upvote,
	})
}

func createProject(ctx *runtime.Context, args []byte) error {
	a := ProjectArgs{}
	owner, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	CreateProject(ctx, owner, a.Metadata)
	return nil
}

func createReview(ctx *runtime.Context, args []byte) error {
	a := ReviewArgs{}
	author, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = CreateReview(ctx, author, a.Project, a.Rating, a.Content)
	return err
}

func upvote(ctx *runtime.Context, args []byte) error {
	a := UpvoteArgs{}
	who, err := runtime.SignedArgs(ctx, args, &a)
	if nil != err {
		return err
	}
	_, err = Upvote(ctx, who, a.Project, a.Review)
	return err
}
