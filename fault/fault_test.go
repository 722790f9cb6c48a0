// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ipchaind/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrLengthOne     = fault.LengthError("length one")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrPermissionOne = fault.PermissionError("permission one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrRecordOne     = fault.RecordError("record one")
	ErrResourceOne   = fault.ResourceError("resource one")
)

// test that the various error classes can be distinguished
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		invalid    bool
		length     bool
		notFound   bool
		permission bool
		process    bool
		record     bool
		resource   bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false, false},
		{ErrPermissionOne, false, false, false, false, true, false, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false, false},
		{ErrRecordOne, false, false, false, false, false, false, true, false},
		{ErrResourceOne, false, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPermission(err) != e.permission {
			t.Errorf("%d: expected 'permission' == %v for err = %v", i, e.permission, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
		if fault.IsErrResource(err) != e.resource {
			t.Errorf("%d: expected 'resource' == %v for err = %v", i, e.resource, err)
		}
	}

	assert.True(t, fault.IsValidation(ErrNotFoundOne), "not found is a validation error")
	assert.False(t, fault.IsValidation(ErrPermissionOne), "permission is a policy error")
}

func TestDiscriminant(t *testing.T) {
	first := fault.InvalidError("discriminant test first")
	second := fault.NotFoundError("discriminant test second")
	fault.Register(200, first, second)

	d := fault.DiscriminantOf(second)
	assert.Equal(t, uint8(200), d.Module, "wrong module")
	assert.Equal(t, uint8(1), d.Index, "wrong index")
	assert.Equal(t, "discriminant test second", d.Tag, "wrong tag")

	e, ok := fault.Lookup(200, 0)
	assert.True(t, ok, "lookup failed")
	assert.Equal(t, first, e, "wrong error")

	other := fault.DiscriminantOf(errors.New("something odd"))
	assert.Equal(t, fault.DiscriminantOf(fault.Other).Index, other.Index, "unregistered must map to other")
	assert.Equal(t, "something odd", other.Tag, "unregistered keeps its text")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	dup := fault.InvalidError("discriminant test duplicate")
	fault.Register(201, dup)
	assert.Panics(t, func() { fault.Register(202, dup) }, "duplicate must panic")
}
