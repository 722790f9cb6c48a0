// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/ipchaind/codec"
	"github.com/bitmark-inc/ipchaind/fault"
)

// Event - a typed state transition notice
type Event interface {
	codec.Encodable
	EventName() string
}

// PhaseKind - part of the block that emitted an event
type PhaseKind uint8

// possible phases
const (
	PhaseInitialization PhaseKind = iota
	PhaseApplyExtrinsic PhaseKind = iota
	PhaseFinalization   PhaseKind = iota
)

// Phase - where in a block an event was deposited
type Phase struct {
	Kind  PhaseKind `json:"kind"`
	Index uint32    `json:"index"`
}

// EventRecord - an entry of the per block event log
type EventRecord struct {
	Block  uint64
	Phase  Phase
	Module uint8
	Name   string
	Data   []byte

	// only present for events of the block currently being applied
	Event Event
}

func (r EventRecord) Encode(e *codec.Encoder) {
	e.Uint64(r.Block)
	e.Uint8(uint8(r.Phase.Kind))
	e.Uint32(r.Phase.Index)
	e.Uint8(r.Module)
	e.String(r.Name)
	e.ByteSlice(r.Data)
}

func (r *EventRecord) Decode(d *codec.Decoder) {
	r.Block = d.Uint64()
	kind := d.Uint8()
	if kind > uint8(PhaseFinalization) {
		d.Fail(fault.UnknownEnumValue)
		return
	}
	r.Phase.Kind = PhaseKind(kind)
	r.Phase.Index = d.Uint32()
	r.Module = d.Uint8()
	r.Name = d.String()
	r.Data = d.ByteSlice()
}

// MarshalJSON - typed data when available, hex otherwise
func (r EventRecord) MarshalJSON() ([]byte, error) {
	type record struct {
		Block  uint64      `json:"block"`
		Phase  Phase       `json:"phase"`
		Module uint8       `json:"module"`
		Name   string      `json:"name"`
		Data   interface{} `json:"data"`
	}
	out := record{
		Block:  r.Block,
		Phase:  r.Phase,
		Module: r.Module,
		Name:   r.Name,
		Data:   hex.EncodeToString(r.Data),
	}
	if nil != r.Event {
		out.Data = r.Event
	}
	return json.Marshal(out)
}

// EventLog - the events of one block in deposit order
type EventLog struct {
	block   uint64
	records []EventRecord
}

// NewEventLog - start the log of a block
func NewEventLog(block uint64) *EventLog {
	return &EventLog{
		block: block,
	}
}

// Deposit - append an event
func (l *EventLog) Deposit(phase Phase, module uint8, ev Event) {
	l.records = append(l.records, EventRecord{
		Block:  l.block,
		Phase:  phase,
		Module: module,
		Name:   ev.EventName(),
		Data:   codec.Marshal(ev),
		Event:  ev,
	})
}

// Mark - savepoint of the log
func (l *EventLog) Mark() int {
	return len(l.records)
}

// Truncate - drop all events after a mark
func (l *EventLog) Truncate(mark int) {
	if mark < len(l.records) {
		l.records = l.records[:mark]
	}
}

// Records - all events deposited so far
func (l *EventLog) Records() []EventRecord {
	return l.records
}

// Find - events with the given module and name
func (l *EventLog) Find(module uint8, name string) []EventRecord {
	result := []EventRecord{}
	for _, r := range l.records {
		if r.Module == module && r.Name == name {
			result = append(result, r)
		}
	}
	return result
}

// EncodeRecords - the stored form of a block event log
func EncodeRecords(records []EventRecord) []byte {
	e := codec.NewEncoder()
	e.Length(len(records))
	for _, r := range records {
		r.Encode(e)
	}
	return e.Bytes()
}

// DecodeRecords - inverse of EncodeRecords
func DecodeRecords(buffer []byte) ([]EventRecord, error) {
	d := codec.NewDecoder(buffer)
	n := d.Length()
	records := make([]EventRecord, 0, n)
	for i := 0; i < n && nil == d.Err(); i += 1 {
		r := EventRecord{}
		r.Decode(d)
		records = append(records, r)
	}
	err := d.Finish()
	if nil != err {
		return nil, err
	}
	return records, nil
}
