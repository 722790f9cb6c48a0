// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/fixtures"
	"github.com/bitmark-inc/ipchaind/review"
	"github.com/bitmark-inc/ipchaind/runtime"
)

func setup(t *testing.T) *runtime.Context {
	d := runtime.NewDispatcher()
	review.Register(d)
	return fixtures.NewContext(fixtures.NewDatabase(t), d, 1, 100)
}

func createReview(ctx *runtime.Context, kp account.KeyPair, project uint64, rating uint8) error {
	return ctx.Dispatch(fixtures.Signed(kp), runtime.NewCall(constants.ModuleReview, review.FnCreateReview, review.ReviewArgs{
		Project: project,
		Rating:  rating,
		Content: dao.Metadata{rating},
	}))
}

func upvote(ctx *runtime.Context, kp account.KeyPair, project uint64, id uint64) error {
	return ctx.Dispatch(fixtures.Signed(kp), runtime.NewCall(constants.ModuleReview, review.FnUpvote, review.UpvoteArgs{
		Project: project,
		Review:  id,
	}))
}

func TestProjectAndReviews(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)

	err := ctx.Dispatch(fixtures.Signed(fixtures.Alice), runtime.NewCall(constants.ModuleReview, review.FnCreateProject, review.ProjectArgs{
		Metadata: dao.Metadata{7},
	}))
	require.Nil(t, err, "create project")

	created := ctx.Events.Find(constants.ModuleReview, "ProjectCreated")
	require.Equal(t, 1, len(created), "project event")
	project := created[0].Event.(review.ProjectCreated).Id

	p, err := review.GetProject(ctx.Tx, ctx.DB, project)
	require.Nil(t, err, "get project")
	assert.Equal(t, fixtures.Alice.Account(), p.Owner, "owner")

	assert.Equal(t, review.ErrUnknownProject, createReview(ctx, fixtures.Bob, project+1, 3), "unknown project")
	assert.Equal(t, review.ErrInvalidRating, createReview(ctx, fixtures.Bob, project, 0), "rating low")
	assert.Equal(t, review.ErrInvalidRating, createReview(ctx, fixtures.Bob, project, 6), "rating high")
	require.Nil(t, createReview(ctx, fixtures.Bob, project, 4), "bob reviews")
	require.Nil(t, createReview(ctx, fixtures.Carol, project, 5), "carol reviews")

	reviews, err := review.Reviews(ctx.Tx, ctx.DB, project, 0, 10)
	require.Nil(t, err, "list")
	require.Equal(t, 2, len(reviews), "two reviews")
	assert.Equal(t, fixtures.Bob.Account(), reviews[0].Author, "creation order")
	assert.Equal(t, uint8(5), reviews[1].Rating, "rating")

	page, err := review.Reviews(ctx.Tx, ctx.DB, project, 1, 10)
	require.Nil(t, err, "page")
	assert.Equal(t, 1, len(page), "second page")

	none, err := review.Reviews(ctx.Tx, ctx.DB, project+1, 0, 10)
	require.Nil(t, err, "other project")
	assert.Equal(t, 0, len(none), "no reviews")
}

func TestUpvote(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := setup(t)
	p := review.CreateProject(ctx, fixtures.Alice.Account(), dao.Metadata{})
	r, err := review.CreateReview(ctx, fixtures.Bob.Account(), p.Id, 3, dao.Metadata{})
	require.Nil(t, err, "review")

	assert.Equal(t, review.ErrOwnReview, upvote(ctx, fixtures.Bob, p.Id, r.Id), "own review")
	require.Nil(t, upvote(ctx, fixtures.Alice, p.Id, r.Id), "alice")
	assert.Equal(t, review.ErrAlreadyUpvoted, upvote(ctx, fixtures.Alice, p.Id, r.Id), "alice twice")
	require.Nil(t, upvote(ctx, fixtures.Carol, p.Id, r.Id), "carol")
	assert.Equal(t, review.ErrUnknownReview, upvote(ctx, fixtures.Carol, p.Id, r.Id+1), "unknown review")

	stored, err := review.GetReview(ctx.Tx, ctx.DB, p.Id, r.Id)
	require.Nil(t, err, "get")
	assert.Equal(t, uint32(2), stored.Upvotes, "upvotes")

	events := ctx.Events.Find(constants.ModuleReview, "ReviewUpvoted")
	require.Equal(t, 2, len(events), "upvote events")
	assert.Equal(t, uint32(2), events[1].Event.(review.ReviewUpvoted).Upvotes, "running count")
}
