// Package entitydb implements a world.Provider that stores block entities in
// a LevelDB database. Block entity data is stored as little endian NBT.
package entitydb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/storage"
	"github.com/df-mc/goleveldb/leveldb/util"
	"github.com/dm-vev/candelight/server/world"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// keyPrefix is the prefix of all keys holding block entity data.
const keyPrefix = "be"

// keyLen is the length of a key: the prefix followed by the X, Y and Z
// coordinates as 32-bit little endian integers.
const keyLen = len(keyPrefix) + 12

// ErrCorruptKey is returned when a key with the block entity prefix does not
// encode a block position.
var ErrCorruptKey = errors.New("corrupt block entity key")

// Config holds the settings of a DB.
type Config struct {
	// Log is the Logger used by the DB. If nil, slog.Default() is used.
	Log *slog.Logger
	// ReadOnly opens the database without write access.
	ReadOnly bool
}

// DB implements world.Provider on top of a LevelDB database.
type DB struct {
	conf Config
	ldb  *leveldb.DB
}

// Compile time check to make sure DB implements world.Provider.
var _ world.Provider = (*DB)(nil)

// Open opens the database in the directory passed, creating it if it does not
// yet exist.
func (conf Config) Open(dir string) (*DB, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	ldb, err := leveldb.OpenFile(dir, &opt.Options{ReadOnly: conf.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("open entity db: %w", err)
	}
	conf.Log.Debug("Opened entity database.", "dir", dir)
	return &DB{conf: conf, ldb: ldb}, nil
}

// New opens a database on the storage.Storage passed, such as one returned by
// storage.NewMemStorage.
func (conf Config) New(stor storage.Storage) (*DB, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	ldb, err := leveldb.Open(stor, &opt.Options{ReadOnly: conf.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("open entity db: %w", err)
	}
	return &DB{conf: conf, ldb: ldb}, nil
}

// LoadBlockEntity ...
func (db *DB) LoadBlockEntity(pos cube.Pos) (map[string]any, bool, error) {
	b, err := db.ldb.Get(key(pos), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("load block entity %v: %w", pos, err)
	}
	m := make(map[string]any)
	if err := nbt.UnmarshalEncoding(b, &m, nbt.LittleEndian); err != nil {
		return nil, false, fmt.Errorf("decode block entity %v: %w", pos, err)
	}
	return m, true, nil
}

// SaveBlockEntity ...
func (db *DB) SaveBlockEntity(pos cube.Pos, data map[string]any) error {
	b, err := nbt.MarshalEncoding(data, nbt.LittleEndian)
	if err != nil {
		return fmt.Errorf("encode block entity %v: %w", pos, err)
	}
	if err := db.ldb.Put(key(pos), b, nil); err != nil {
		return fmt.Errorf("save block entity %v: %w", pos, err)
	}
	return nil
}

// DeleteBlockEntity ...
func (db *DB) DeleteBlockEntity(pos cube.Pos) error {
	if err := db.ldb.Delete(key(pos), nil); err != nil {
		return fmt.Errorf("delete block entity %v: %w", pos, err)
	}
	return nil
}

// ForEach calls f for every block entity stored in the database, in key
// order. Iteration stops at the first error returned by f.
func (db *DB) ForEach(f func(pos cube.Pos, data map[string]any) error) error {
	it := db.ldb.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer it.Release()

	for it.Next() {
		pos, err := parseKey(it.Key())
		if err != nil {
			db.conf.Log.Warn("Skipping block entity with invalid key.", "key", it.Key())
			continue
		}
		m := make(map[string]any)
		if err := nbt.UnmarshalEncoding(it.Value(), &m, nbt.LittleEndian); err != nil {
			return fmt.Errorf("decode block entity %v: %w", pos, err)
		}
		if err := f(pos, m); err != nil {
			return err
		}
	}
	return it.Error()
}

// Close closes the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

func key(pos cube.Pos) []byte {
	b := make([]byte, keyLen)
	copy(b, keyPrefix)
	binary.LittleEndian.PutUint32(b[2:], uint32(pos[0]))
	binary.LittleEndian.PutUint32(b[6:], uint32(pos[1]))
	binary.LittleEndian.PutUint32(b[10:], uint32(pos[2]))
	return b
}

func parseKey(b []byte) (cube.Pos, error) {
	if len(b) != keyLen {
		return cube.Pos{}, ErrCorruptKey
	}
	return cube.Pos{
		int(int32(binary.LittleEndian.Uint32(b[2:]))),
		int(int32(binary.LittleEndian.Uint32(b[6:]))),
		int(int32(binary.LittleEndian.Uint32(b[10:]))),
	}, nil
}
