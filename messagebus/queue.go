// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its parameters
type Message struct {
	Command    string   // type of packed data
	Parameters [][]byte // parameters for the command
}

// BusType - all available queues
type BusType struct {
	Events *Queue // block event logs for the publisher
}

// Bus - the queues of the node
var Bus = BusType{
	Events: newQueue(defaultQueueSize),
}

// Queue - a single reader queue
type Queue struct {
	c chan Message
}

func newQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, false if the queue is full and it was dropped
func (queue *Queue) Send(command string, parameters ...[]byte) bool {
	select {
	case queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}
