// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/messagebus"
	"github.com/bitmark-inc/ipchaind/portal"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

// EventsCommand - first part of every published message
const EventsCommand = "events"

// Listener - turns each imported block into a message for the
// broadcaster
type Listener struct {
	log *logger.L
	db  *storage.Database
}

// NewListener - create a listener reading portal tags from a database
func NewListener(db *storage.Database) *Listener {
	return &Listener{
		log: logger.New("publish-listener"),
		db:  db,
	}
}

// BlockImported - queue the events of a block
func (l *Listener) BlockImported(header blockrecord.Header, records []runtime.EventRecord) {
	tx := l.db.NewTransaction()
	tags := portal.Tags(tx, l.db, header.Number)
	tx.Discard()

	parameters, err := Pack(header, records, tags)
	if nil != err {
		l.log.Errorf("block: %d  pack error: %s", header.Number, err)
		return
	}
	if !messagebus.Bus.Events.Send(EventsCommand, parameters...) {
		l.log.Warnf("queue full, block: %d not published", header.Number)
	}
}

// Pack - the parts after the command
//
//   [0] block number, 8 bytes big endian
//   [1] block hash
//   [2] JSON array of the event records in deposit order
//   [3] JSON object of portal id to extrinsic indices
func Pack(header blockrecord.Header, records []runtime.EventRecord, tags map[portal.PortalId][]uint32) ([][]byte, error) {
	number := make([]byte, 8)
	binary.BigEndian.PutUint64(number, header.Number)
	hash := header.Hash()

	if nil == records {
		records = []runtime.EventRecord{}
	}
	events, err := json.Marshal(records)
	if nil != err {
		return nil, err
	}
	tagged, err := json.Marshal(tags)
	if nil != err {
		return nil, err
	}
	return [][]byte{number, hash[:], events, tagged}, nil
}
