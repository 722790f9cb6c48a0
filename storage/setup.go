// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	BlockHeaders       *PoolHandle `prefix:"H"`
	BlockNumbers       *PoolHandle `prefix:"h"`
	Events             *PoolHandle `prefix:"E"`
	Nonces             *PoolHandle `prefix:"n"`
	Meta               *PoolHandle `prefix:"x"`
	Counters           *PoolHandle `prefix:"#"`
	Assets             *PoolHandle `prefix:"a"`
	Balances           *PoolHandle `prefix:"b"`
	Reserves           *PoolHandle `prefix:"r"`
	Locks              *PoolHandle `prefix:"l"`
	Classes            *PoolHandle `prefix:"c"`
	Instances          *PoolHandle `prefix:"i"`
	Collections        *PoolHandle `prefix:"C"`
	Items              *PoolHandle `prefix:"I"`
	Fractions          *PoolHandle `prefix:"F"`
	CollectionItems    *PoolHandle `prefix:"J"`
	FractionAssets     *PoolHandle `prefix:"N"`
	Proposals          *PoolHandle `prefix:"P"`
	ProposalsByCreator *PoolHandle `prefix:"Q"`
	ProposalCreator    *PoolHandle `prefix:"q"`
	Daos               *PoolHandle `prefix:"D"`
	DaoKeys            *PoolHandle `prefix:"K"`
	DaoAuthorities     *PoolHandle `prefix:"A"`
	Sales              *PoolHandle `prefix:"S"`
	Contributions      *PoolHandle `prefix:"T"`
	SalesByStatus      *PoolHandle `prefix:"U"`
	SaleSchedule       *PoolHandle `prefix:"V"`
	Portals            *PoolHandle `prefix:"W"`
	PortalOwners       *PoolHandle `prefix:"O"`
	PortalDelegates    *PoolHandle `prefix:"G"`
	SignedTx           *PoolHandle `prefix:"X"`
	PortalTags         *PoolHandle `prefix:"Y"`
	Postponed          *PoolHandle `prefix:"z"`
	PostponedDue       *PoolHandle `prefix:"Z"`
	VestingPlans       *PoolHandle `prefix:"v"`
	Domains            *PoolHandle `prefix:"d"`
	Projects           *PoolHandle `prefix:"p"`
	Reviews            *PoolHandle `prefix:"w"`
	Upvotes            *PoolHandle `prefix:"u"`
	Agreements         *PoolHandle `prefix:"g"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - the world state database and its pools
type Database struct {
	pools

	sync.RWMutex
	db       *leveldb.DB
	cache    Cache
	readOnly bool
}

// Open - open up the database stored in a directory
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a database with no backing files, for tests and tools
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fmt.Errorf("database is not initialised: version: %d", version)
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	d := &Database{
		db:       db,
		cache:    newCache(),
		readOnly: readOnly,
	}

	err = d.bindPools()
	if nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// scan each field of the pools struct and create its handle
func (d *Database) bindPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(d.pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.pools).Elem()

	seen := make(map[byte]string)

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s has same prefix as: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:     fieldInfo.Name,
			prefix:   prefix,
			limit:    limit,
			database: d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()
	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
	d.cache.Clear()
}

// IsReadOnly - true if opened for queries only
func (d *Database) IsReadOnly() bool {
	return d.readOnly
}

// return:
//   version number (0 if not set)
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
