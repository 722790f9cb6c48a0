// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portal

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/dao"
	"github.com/bitmark-inc/ipchaind/extrinsic"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// tags: block ++ portal ++ extrinsic index
func tagKey(block uint64, id PortalId, index uint32) []byte {
	return storage.Key(storage.Uint64Key(block), id[:], storage.Uint32Key(index))
}

// postponed: portal ++ sequence
func postponedKey(id PortalId, sequence uint64) []byte {
	return storage.Key(id[:], storage.Uint64Key(sequence))
}

// due index: block ++ portal ++ sequence
func dueKey(due uint64, id PortalId, sequence uint64) []byte {
	return storage.Key(storage.Uint64Key(due), id[:], storage.Uint64Key(sequence))
}

// Get - a portal by id
func Get(tx storage.Transaction, db *storage.Database, id PortalId) (Portal, error) {
	p := Portal{}
	buffer := tx.Get(db.Portals, id[:])
	if nil == buffer {
		return p, ErrUnknownPortal
	}
	err := codec.Unmarshal(buffer, &p)
	if nil != err {
		logger.Panicf("portal: %s is corrupt: %s", id, err)
	}
	return p, nil
}

// OfOwner - the portal of a tenant account
func OfOwner(tx storage.Transaction, db *storage.Database, owner account.AccountId) (PortalId, bool) {
	id := PortalId{}
	buffer := tx.Get(db.PortalOwners, owner[:])
	if nil == buffer {
		return id, false
	}
	copy(id[:], buffer)
	return id, true
}

// Delegate - the countersigning account of a portal
func Delegate(tx storage.Transaction, db *storage.Database, id PortalId) (account.AccountId, bool) {
	a := account.AccountId{}
	buffer := tx.Get(db.PortalDelegates, id[:])
	if nil == buffer {
		return a, false
	}
	copy(a[:], buffer)
	return a, true
}

// SignedBy - the portal a delegate signed an extrinsic hash for
func SignedBy(tx storage.Transaction, db *storage.Database, hash runtime.Hash) (PortalId, bool) {
	id := PortalId{}
	buffer := tx.Get(db.SignedTx, hash[:])
	if nil == buffer {
		return id, false
	}
	copy(id[:], buffer)
	return id, true
}

func put(ctx *runtime.Context, p Portal) {
	ctx.Tx.Put(ctx.DB.Portals, p.Id[:], codec.Marshal(p))
	ctx.Tx.Put(ctx.DB.PortalDelegates, p.Id[:], p.Delegate[:])
}

// Create - register the portal of the tenant that owns the origin
func Create(ctx *runtime.Context, owner account.AccountId, delegate account.AccountId, metadata *dao.Metadata) (Portal, error) {
	tenant, ok := dao.IdOfKey(ctx.Tx, ctx.DB, owner)
	if !ok {
		return Portal{}, ErrNotTenant
	}
	id := PortalId(tenant)
	if ctx.Tx.Has(ctx.DB.Portals, id[:]) || ctx.Tx.Has(ctx.DB.PortalOwners, owner[:]) {
		return Portal{}, ErrPortalAlreadyExist
	}

	p := Portal{
		Id:       id,
		Owner:    owner,
		Delegate: delegate,
		Metadata: metadata,
	}
	put(ctx, p)
	ctx.Tx.Put(ctx.DB.PortalOwners, owner[:], id[:])
	ctx.Deposit(constants.ModulePortal, PortalCreated{
		Id:       id,
		Owner:    owner,
		Delegate: delegate,
	})
	return p, nil
}

// Update - replace the delegate and or the metadata
func Update(ctx *runtime.Context, owner account.AccountId, delegate *account.AccountId, metadata *dao.Metadata) (Portal, error) {
	id, ok := OfOwner(ctx.Tx, ctx.DB, owner)
	if !ok {
		return Portal{}, ErrUnknownPortal
	}
	p, err := Get(ctx.Tx, ctx.DB, id)
	if nil != err {
		return p, err
	}
	if nil != delegate {
		p.Delegate = *delegate
	}
	if nil != metadata {
		p.Metadata = metadata
	}
	put(ctx, p)
	ctx.Deposit(constants.ModulePortal, PortalUpdated{
		Id:       id,
		Delegate: p.Delegate,
		Metadata: p.Metadata,
	})
	return p, nil
}

// Sign - a delegate countersigns an extrinsic that calls exec on its
// portal
func Sign(ctx *runtime.Context, delegate account.AccountId, wrapped []byte) (runtime.Hash, error) {
	x, err := extrinsic.Parse(wrapped)
	if nil != err {
		return runtime.Hash{}, err
	}
	if !x.Call.Is(constants.ModulePortal, FnExec) {
		return runtime.Hash{}, ErrNotExecCall
	}
	a := ExecArgs{}
	err = codec.Unmarshal(x.Call.Args, &a)
	if nil != err {
		return runtime.Hash{}, err
	}
	expected, ok := Delegate(ctx.Tx, ctx.DB, a.Portal)
	if !ok {
		return runtime.Hash{}, ErrUnknownPortal
	}
	if expected != delegate {
		return runtime.Hash{}, ErrDelegateMismatch
	}

	hash := runtime.HashOf(wrapped)
	if ctx.Tx.Has(ctx.DB.SignedTx, hash[:]) {
		return hash, ErrAlreadySigned
	}
	ctx.Tx.Put(ctx.DB.SignedTx, hash[:], a.Portal[:])
	ctx.Deposit(constants.ModulePortal, Signed{
		Portal: a.Portal,
		Hash:   hash,
	})
	return hash, nil
}

// Exec - run a countersigned call as the caller, tagged with the
// portal
//
// the countersignature is consumed and the tag kept even if the inner
// call fails, its error is in the event
func Exec(ctx *runtime.Context, id PortalId, call runtime.Call) error {
	_, err := ctx.Origin.EnsureSigned()
	if nil != err {
		return err
	}
	hash := ctx.Extrinsic.Hash
	signed, ok := SignedBy(ctx.Tx, ctx.DB, hash)
	if !ok {
		return ErrNotSigned
	}
	if signed != id {
		return ErrPortalMismatch
	}
	ctx.Tx.Delete(ctx.DB.SignedTx, hash[:])
	Tag(ctx, id)

	ev := Executed{
		Portal: id,
		Hash:   hash,
	}
	err = ctx.Dispatch(ctx.Origin, call)
	if nil != err {
		d := fault.DiscriminantOf(err)
		ev.Error = &d
	}
	ctx.Deposit(constants.ModulePortal, ev)
	return nil
}

// Schedule - hold a call of the portal owner until a due block
func Schedule(ctx *runtime.Context, owner account.AccountId, call runtime.Call, due uint64) (Postponed, error) {
	id, ok := OfOwner(ctx.Tx, ctx.DB, owner)
	if !ok {
		return Postponed{}, ErrNotPortalOwner
	}
	if due <= ctx.Block {
		return Postponed{}, ErrDueInPast
	}
	_, err := ctx.Dispatcher.Lookup(call)
	if nil != err {
		return Postponed{}, err
	}

	p := Postponed{
		Portal:   id,
		Sequence: ctx.DB.NextCount(ctx.Tx, "portal.postponed"),
		Due:      due,
		Call:     call,
	}
	ctx.Tx.Put(ctx.DB.Postponed, postponedKey(id, p.Sequence), codec.Marshal(p))
	ctx.Tx.Put(ctx.DB.PostponedDue, dueKey(due, id, p.Sequence), []byte{})
	ctx.Deposit(constants.ModulePortal, Scheduled{
		Portal:   id,
		Sequence: p.Sequence,
		Due:      due,
		Call:     call.Hash(),
	})
	return p, nil
}

// GetPostponed - a scheduled call
func GetPostponed(tx storage.Transaction, db *storage.Database, id PortalId, sequence uint64) (Postponed, error) {
	p := Postponed{}
	buffer := tx.Get(db.Postponed, postponedKey(id, sequence))
	if nil == buffer {
		return p, ErrUnknownPostponed
	}
	err := codec.Unmarshal(buffer, &p)
	if nil != err {
		logger.Panicf("portal: postponed: %s/%d is corrupt: %s", id, sequence, err)
	}
	return p, nil
}

// Due - scheduled calls with a due block at or before a block, in due
// order
func Due(tx storage.Transaction, db *storage.Database, block uint64) []Postponed {
	result := make([]Postponed, 0)
	tx.Range(db.PostponedDue, nil, func(key []byte, value []byte) bool {
		if binary.BigEndian.Uint64(key[:8]) > block {
			return false
		}
		id := PortalId{}
		copy(id[:], key[8:8+dao.IdSize])
		sequence := binary.BigEndian.Uint64(key[8+dao.IdSize:])
		p, err := GetPostponed(tx, db, id, sequence)
		if nil != err {
			logger.Panicf("portal: due index: %x points to missing call", key)
		}
		result = append(result, p)
		return true
	})
	return result
}

// check an unsigned postponed execution against the stored call
func checkPostponed(tx storage.Transaction, db *storage.Database, block uint64, a PostponedArgs) (Postponed, error) {
	p, err := GetPostponed(tx, db, a.Portal, a.Sequence)
	if nil != err {
		return p, err
	}
	if p.Call.Hash() != a.Call.Hash() {
		return p, ErrCallMismatch
	}
	if p.Due > block {
		return p, ErrNotDue
	}
	return p, nil
}

// ExecPostponed - run a due call as the portal owner
//
// a failing inner call still consumes the entry and is reported in the
// event
func ExecPostponed(ctx *runtime.Context, a PostponedArgs) error {
	p, err := checkPostponed(ctx.Tx, ctx.DB, ctx.Block, a)
	if nil != err {
		return err
	}
	portal, err := Get(ctx.Tx, ctx.DB, p.Portal)
	if nil != err {
		return err
	}
	ctx.Tx.Delete(ctx.DB.Postponed, postponedKey(p.Portal, p.Sequence))
	ctx.Tx.Delete(ctx.DB.PostponedDue, dueKey(p.Due, p.Portal, p.Sequence))
	Tag(ctx, p.Portal)

	ev := PostponedExecuted{
		Portal:   p.Portal,
		Sequence: p.Sequence,
	}
	err = ctx.Dispatch(runtime.Signed(portal.Owner), p.Call)
	if nil != err {
		d := fault.DiscriminantOf(err)
		ev.Error = &d
	}
	ctx.Deposit(constants.ModulePortal, ev)
	return nil
}

// Tag - attribute the current extrinsic to a portal
func Tag(ctx *runtime.Context, id PortalId) {
	ctx.Tx.Put(ctx.DB.PortalTags, tagKey(ctx.Block, id, ctx.ExtrinsicIndex()), []byte{})
}

// Tags - the extrinsic indices of a block by portal
func Tags(tx storage.Transaction, db *storage.Database, block uint64) map[PortalId][]uint32 {
	result := make(map[PortalId][]uint32)
	tx.Range(db.PortalTags, storage.Uint64Key(block), func(key []byte, value []byte) bool {
		id := PortalId{}
		copy(id[:], key[8:8+dao.IdSize])
		result[id] = append(result[id], binary.BigEndian.Uint32(key[8+dao.IdSize:]))
		return true
	})
	return result
}

// TagOf - the first portal in id order an extrinsic of a block was
// attributed to
func TagOf(tx storage.Transaction, db *storage.Database, block uint64, index uint32) (PortalId, bool) {
	id := PortalId{}
	found := false
	tx.Range(db.PortalTags, storage.Uint64Key(block), func(key []byte, value []byte) bool {
		if binary.BigEndian.Uint32(key[8+dao.IdSize:]) != index {
			return true
		}
		copy(id[:], key[8:8+dao.IdSize])
		found = true
		return false
	})
	return id, found
}
