// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package uniques - non-fungible classes and instances
//
// only other modules create and move instances, there are no public calls
package uniques

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/account"
	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/constants"
	"github.com/bitmark-inc/ipchaind/fault"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// ClassId - a class of instances
type ClassId uint32

// InstanceId - an instance within its class
type InstanceId uint32

// errors of the uniques module
var (
	ErrUnknownClass    = fault.NotFoundError("unknown class")
	ErrUnknownInstance = fault.NotFoundError("unknown instance")
	ErrInstanceExists  = fault.ExistsError("instance already exists")
	ErrClassInUse      = fault.InvalidError("class still has instances")
)

func init() {
	fault.Register(constants.ModuleUniques,
		ErrUnknownClass,
		ErrUnknownInstance,
		ErrInstanceExists,
		ErrClassInUse,
	)
}

const classCounter = "uniques.class"

// Class - owner and population of a class
type Class struct {
	Id        ClassId           `json:"id"`
	Owner     account.AccountId `json:"owner"`
	Instances uint32            `json:"instances"`
}

func (c Class) Encode(e *codec.Encoder) {
	e.Uint32(uint32(c.Id))
	c.Owner.Encode(e)
	e.Uint32(c.Instances)
}

func (c *Class) Decode(d *codec.Decoder) {
	c.Id = ClassId(d.Uint32())
	c.Owner.Decode(d)
	c.Instances = d.Uint32()
}

func classKey(class ClassId) []byte {
	return storage.Uint32Key(uint32(class))
}

func instanceKey(class ClassId, instance InstanceId) []byte {
	return storage.Key(classKey(class), storage.Uint32Key(uint32(instance)))
}

// GetClass - fetch a class record
func GetClass(tx storage.Transaction, db *storage.Database, class ClassId) (Class, error) {
	c := Class{}
	buffer := tx.Get(db.Classes, classKey(class))
	if nil == buffer {
		return c, ErrUnknownClass
	}
	err := codec.Unmarshal(buffer, &c)
	if nil != err {
		logger.Panicf("uniques: class: %d is corrupt: %s", class, err)
	}
	return c, nil
}

func putClass(ctx *runtime.Context, c Class) {
	ctx.Tx.Put(ctx.DB.Classes, classKey(c.Id), codec.Marshal(c))
}

// Owner - owner of an instance
func Owner(tx storage.Transaction, db *storage.Database, class ClassId, instance InstanceId) (account.AccountId, error) {
	buffer := tx.Get(db.Instances, instanceKey(class, instance))
	if nil == buffer {
		return account.AccountId{}, ErrUnknownInstance
	}
	owner, err := account.FromBytes(buffer)
	if nil != err {
		logger.Panicf("uniques: instance: %d/%d is corrupt: %s", class, instance, err)
	}
	return owner, nil
}

// CreateClass - allocate the next class id
func CreateClass(ctx *runtime.Context, owner account.AccountId) (ClassId, error) {
	class := ClassId(ctx.DB.NextCount(ctx.Tx, classCounter))
	putClass(ctx, Class{
		Id:    class,
		Owner: owner,
	})
	ctx.Deposit(constants.ModuleUniques, ClassCreated{
		Class: class,
		Owner: owner,
	})
	return class, nil
}

// SetClassOwner - reassign a class
func SetClassOwner(ctx *runtime.Context, class ClassId, owner account.AccountId) error {
	c, err := GetClass(ctx.Tx, ctx.DB, class)
	if nil != err {
		return err
	}
	c.Owner = owner
	putClass(ctx, c)
	return nil
}

// DestroyClass - remove a class without instances
func DestroyClass(ctx *runtime.Context, class ClassId) error {
	c, err := GetClass(ctx.Tx, ctx.DB, class)
	if nil != err {
		return err
	}
	if 0 != c.Instances {
		return ErrClassInUse
	}
	ctx.Tx.Delete(ctx.DB.Classes, classKey(class))
	ctx.Deposit(constants.ModuleUniques, ClassDestroyed{Class: class})
	return nil
}

// Mint - create an instance
func Mint(ctx *runtime.Context, class ClassId, instance InstanceId, owner account.AccountId) error {
	c, err := GetClass(ctx.Tx, ctx.DB, class)
	if nil != err {
		return err
	}
	key := instanceKey(class, instance)
	if ctx.Tx.Has(ctx.DB.Instances, key) {
		return ErrInstanceExists
	}
	c.Instances += 1
	putClass(ctx, c)
	ctx.Tx.Put(ctx.DB.Instances, key, owner.Bytes())
	ctx.Deposit(constants.ModuleUniques, Issued{
		Class:    class,
		Instance: instance,
		Owner:    owner,
	})
	return nil
}

// Burn - destroy an instance
func Burn(ctx *runtime.Context, class ClassId, instance InstanceId) error {
	c, err := GetClass(ctx.Tx, ctx.DB, class)
	if nil != err {
		return err
	}
	owner, err := Owner(ctx.Tx, ctx.DB, class, instance)
	if nil != err {
		return err
	}
	c.Instances -= 1
	putClass(ctx, c)
	ctx.Tx.Delete(ctx.DB.Instances, instanceKey(class, instance))
	ctx.Deposit(constants.ModuleUniques, Burned{
		Class:    class,
		Instance: instance,
		Owner:    owner,
	})
	return nil
}

// Transfer - reassign an instance
func Transfer(ctx *runtime.Context, class ClassId, instance InstanceId, to account.AccountId) error {
	from, err := Owner(ctx.Tx, ctx.DB, class, instance)
	if nil != err {
		return err
	}
	ctx.Tx.Put(ctx.DB.Instances, instanceKey(class, instance), to.Bytes())
	ctx.Deposit(constants.ModuleUniques, Transferred{
		Class:    class,
		Instance: instance,
		From:     from,
		To:       to,
	})
	return nil
}
