// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package review - projects, their reviews and upvotes
package review

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// counter names
const (
	projectCounter = "review.project"
	reviewCounter  = "review.review"
)

// reviews: project ++ review id, so a project's reviews are one range
func reviewKey(project uint64, id uint64) []byte {
	return storage.Key(storage.Uint64Key(project), storage.Uint64Key(id))
}

// GetProject - a project by id
func GetProject(tx storage.Transaction, db *storage.Database, id uint64) (Project, error) {
	p := Project{}
	buffer := tx.Get(db.Projects, storage.Uint64Key(id))
	if nil == buffer {
		return p, ErrUnknownProject
	}
	err := codec.Unmarshal(buffer, &p)
	if nil != err {
		logger.Panicf("review: project: %d is corrupt: %s", id, err)
	}
	return p, nil
}

// GetReview - a review of a project
func GetReview(tx storage.Transaction, db *storage.Database, project uint64, id uint64) (Review, error) {
	r := Review{}
	buffer := tx.Get(db.Reviews, reviewKey(project, id))
	if nil == buffer {
		return r, ErrUnknownReview
	}
	err := codec.Unmarshal(buffer, &r)
	if nil != err {
		logger.Panicf("review: %d/%d is corrupt: %s", project, id, err)
	}
	return r, nil
}

// Reviews - a page of the reviews of a project in creation order
func Reviews(tx storage.Transaction, db *storage.Database, project uint64, start int, count int) ([]Review, error) {
	result := make([]Review, 0)
	_, err := storage.Page(tx, db.Reviews, storage.Uint64Key(project), start, count, func(key []byte, value []byte) {
		r := Review{}
		err := codec.Unmarshal(value, &r)
		if nil != err {
			logger.Panicf("review: %x is corrupt: %s", key, err)
		}
		result = append(result, r)
	})
	return result, err
}

// CreateProject - register a project to be reviewed
func CreateProject(ctx *runtime.Context, owner account.AccountId, metadata dao.Metadata) Project {
	p := Project{
		Id:        ctx.DB.NextCount(ctx.Tx, projectCounter),
		Owner:     owner,
		Metadata:  metadata,
		CreatedAt: ctx.Block,
	}
	ctx.Tx.Put(ctx.DB.Projects, storage.Uint64Key(p.Id), codec.Marshal(p))
	ctx.Deposit(constants.ModuleReview, ProjectCreated{
		Id:    p.Id,
		Owner: owner,
	})
	return p
}

// CreateReview - rate a project
func CreateReview(ctx *runtime.Context, author account.AccountId, project uint64, rating uint8, content dao.Metadata) (Review, error) {
	if rating < MinRating || rating > MaxRating {
		return Review{}, ErrInvalidRating
	}
	if !ctx.Tx.Has(ctx.DB.Projects, storage.Uint64Key(project)) {
		return Review{}, ErrUnknownProject
	}
	r := Review{
		Id:        ctx.DB.NextCount(ctx.Tx, reviewCounter),
		Project:   project,
		Author:    author,
		Rating:    rating,
		Content:   content,
		CreatedAt: ctx.Block,
	}
	ctx.Tx.Put(ctx.DB.Reviews, reviewKey(project, r.Id), codec.Marshal(r))
	ctx.Deposit(constants.ModuleReview, ReviewCreated{
		Id:      r.Id,
		Project: project,
		Author:  author,
		Rating:  rating,
	})
	return r, nil
}

// Upvote - one upvote per account, never on its own review
func Upvote(ctx *runtime.Context, who account.AccountId, project uint64, id uint64) (uint32, error) {
	r, err := GetReview(ctx.Tx, ctx.DB, project, id)
	if nil != err {
		return 0, err
	}
	if r.Author == who {
		return 0, ErrOwnReview
	}
	key := storage.Key(storage.Uint64Key(id), who[:])
	if ctx.Tx.Has(ctx.DB.Upvotes, key) {
		return r.Upvotes, ErrAlreadyUpvoted
	}
	ctx.Tx.Put(ctx.DB.Upvotes, key, []byte{})
	r.Upvotes += 1
	ctx.Tx.Put(ctx.DB.Reviews, reviewKey(project, id), codec.Marshal(r))
	ctx.Deposit(constants.ModuleReview, ReviewUpvoted{
		Id:      id,
		Who:     who,
		Upvotes: r.Upvotes,
	})
	return r.Upvotes, nil
}
