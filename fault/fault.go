// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError     // already exists
type InvalidError GenericError    // validation: bad value, bad target, invalid plan
type LengthError GenericError     // validation: size or limit exceeded
type NotFoundError GenericError   // validation: not found
type PermissionError GenericError // policy: origin or ownership mismatch
type ProcessError GenericError    // system fault
type RecordError GenericError     // codec: malformed record
type ResourceError GenericError   // resource: overflow, unknown asset

// common errors - keep in alphabetic order
var (
	AlreadyInitialised         = ProcessError("already initialised")
	BadOrigin                  = PermissionError("bad origin")
	BadProof                   = PermissionError("bad signature")
	BlockNotFound              = NotFoundError("block not found")
	CallNotFound               = NotFoundError("call not found")
	CannotDecodeAccount        = InvalidError("cannot decode account")
	CannotLookup               = NotFoundError("cannot lookup")
	CertificateFileExists      = ExistsError("certificate file already exists")
	ChecksumMismatch           = InvalidError("checksum mismatch")
	CorruptRecord              = RecordError("corrupt record")
	DatabaseIsNotSet           = ProcessError("database is not set")
	DuplicateTransaction       = ExistsError("transaction already in pool")
	ExhaustsResources          = LengthError("transaction would exhaust block resources")
	FutureTransaction          = InvalidError("transaction nonce is in the future")
	InvalidArguments           = InvalidError("invalid arguments")
	InvalidBlockNumber         = InvalidError("invalid block number")
	InvalidBlockVersion        = InvalidError("invalid block version")
	InvalidChain               = InvalidError("invalid chain")
	InvalidConfiguration       = InvalidError("invalid configuration")
	InvalidCount               = InvalidError("invalid count")
	InvalidCursor              = InvalidError("invalid cursor")
	InvalidGenesis             = InvalidError("invalid genesis")
	InvalidIpAddress           = InvalidError("invalid IP address")
	InvalidKeyLength           = InvalidError("invalid key length")
	InvalidLoggerChannel       = ProcessError("invalid logger channel")
	InvalidMerkleRoot          = InvalidError("invalid merkle root")
	InvalidParentHash          = InvalidError("invalid parent hash")
	InvalidPortNumber          = InvalidError("invalid port number")
	InvalidPrivateKeyFile      = InvalidError("invalid private key file")
	InvalidPublicKeyFile       = InvalidError("invalid public key file")
	InvalidSignatureScheme     = InvalidError("invalid signature scheme")
	InvalidStructPointer       = InvalidError("invalid struct pointer")
	InvalidTimestamp           = InvalidError("invalid timestamp")
	KeyFileAlreadyExists       = ExistsError("key file already exists")
	MissingParameters          = InvalidError("missing parameters")
	NotAvailableDuringStartup  = ProcessError("not available during startup")
	NotAvailableInReadOnlyMode = ProcessError("not available in read-only mode")
	NotConnected               = ProcessError("not connected")
	NotInitialised             = ProcessError("not initialised")
	Other                      = ProcessError("other")
	PaymentFailed              = ResourceError("inability to pay transaction fees")
	PoolFull                   = ResourceError("transaction pool is full")
	RateLimiting               = ProcessError("rate limiting")
	StaleTransaction           = InvalidError("transaction nonce is stale")
	TransactionExpired         = InvalidError("transaction is outdated")
	TransactionInPlace         = ProcessError("storage transaction already in use")
	TransactionNotStarted      = ProcessError("storage transaction not started")
	Truncated                  = RecordError("record is truncated")
	TrailingBytes              = RecordError("record has trailing bytes")
	UnknownEnumValue           = RecordError("unknown enumeration value")
	UnsignedNotAllowed         = PermissionError("unsigned transaction not allowed")
	WrongGenesis               = InvalidError("transaction is for a different chain")
	WrongSpecVersion           = InvalidError("transaction has wrong spec version")
	WrongTransactionVersion    = InvalidError("transaction has wrong transaction version")
)

// the error interface methods
func (e GenericError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }
func (e ResourceError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
func IsErrResource(e error) bool   { _, ok := e.(ResourceError); return ok }

// IsValidation - client fault, no state change
func IsValidation(e error) bool {
	return IsErrExists(e) || IsErrInvalid(e) || IsErrLength(e) || IsErrNotFound(e) || IsErrRecord(e)
}
