// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"sync"
)

// Discriminant - the stable identity of a registered error
type Discriminant struct {
	Module uint8  `json:"module"`
	Index  uint8  `json:"index"`
	Tag    string `json:"tag"`
}

// String - for fmt %s
func (d Discriminant) String() string {
	return fmt.Sprintf("%d:%d(%s)", d.Module, d.Index, d.Tag)
}

// the system module owns the common errors above
const systemModule = 0

var registry struct {
	sync.RWMutex
	errors map[error]Discriminant
	next   map[uint8]uint8
}

func init() {
	registry.errors = make(map[error]Discriminant)
	registry.next = make(map[uint8]uint8)

	Register(systemModule,
		Other,
		BadOrigin,
		BadProof,
		CallNotFound,
		CannotLookup,
		CorruptRecord,
		ExhaustsResources,
		FutureTransaction,
		InvalidSignatureScheme,
		PaymentFailed,
		StaleTransaction,
		TransactionExpired,
		Truncated,
		TrailingBytes,
		UnknownEnumValue,
		UnsignedNotAllowed,
		WrongGenesis,
		WrongSpecVersion,
		WrongTransactionVersion,
	)
}

// Register - append errors to the closed list of a module
//
// indices are allocated in the order of registration, so the order of
// the arguments is part of the wire format
func Register(module uint8, errs ...error) {
	registry.Lock()
	defer registry.Unlock()

	for _, e := range errs {
		if _, ok := registry.errors[e]; ok {
			panic(fmt.Sprintf("fault: duplicate registration of: %q", e))
		}
		index := registry.next[module]
		registry.errors[e] = Discriminant{
			Module: module,
			Index:  index,
			Tag:    e.Error(),
		}
		registry.next[module] = index + 1
	}
}

// DiscriminantOf - find the discriminant of an error
//
// unregistered errors map to the Other sentinel so a dispatch result
// always carries a discriminant
func DiscriminantOf(e error) Discriminant {
	registry.RLock()
	defer registry.RUnlock()

	if d, ok := registry.errors[e]; ok {
		return d
	}
	d := registry.errors[Other]
	d.Tag = e.Error()
	return d
}

// Lookup - find the error for a discriminant
func Lookup(module uint8, index uint8) (error, bool) {
	registry.RLock()
	defer registry.RUnlock()

	for e, d := range registry.errors {
		if d.Module == module && d.Index == index {
			return e, true
		}
	}
	return nil, false
}
