// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/ipchaind/block"
	"github.com/bitmark-inc/ipchaind/blockrecord"
	"github.com/bitmark-inc/ipchaind/runtime"
	"github.com/bitmark-inc/ipchaind/storage"
)

type blockResult struct {
	Hash   runtime.Hash          `json:"hash"`
	Header blockrecord.Header    `json:"header"`
	Events []runtime.EventRecord `json:"events"`
}

// dump of a particular block
func dumpBlock(db *storage.Database, number uint64) (*blockResult, error) {
	tx := db.NewTransaction()
	defer tx.Discard()

	header, err := block.Header(tx, db, number)
	if nil != err {
		return nil, err
	}
	events, err := block.Events(tx, db, number)
	if nil != err {
		return nil, err
	}
	if nil == events {
		events = []runtime.EventRecord{}
	}
	return &blockResult{
		Hash:   header.Hash(),
		Header: header,
		Events: events,
	}, nil
}

// JSON array of a range of blocks
func dumpBlocks(db *storage.Database, out io.Writer, first uint64, last uint64) error {
	fmt.Fprintf(out, "[\n")
	for n := first; n <= last; n += 1 {
		b, err := dumpBlock(db, n)
		if nil != err {
			return err
		}
		s, err := json.MarshalIndent(b, "  ", "  ")
		if nil != err {
			return err
		}
		separator := ","
		if n == last {
			separator = ""
		}
		fmt.Fprintf(out, "  %s%s\n", s, separator)
	}
	fmt.Fprintf(out, "]\n")
	return nil
}

// data command handler
// the database is open so these commands can read the stored blocks
func processDataCommand(arguments []string, db *storage.Database) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}

		// optional end range
		nEnd := n
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		output := "-"
		if len(arguments) > 2 {
			output = strings.TrimSpace(arguments[2])
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
			defer fd.Close()
		}

		err = dumpBlocks(db, fd, n, nEnd)
		if nil != err {
			exitwithstatus.Message("dump block error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}
