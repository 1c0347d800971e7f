// Package persist is the durable terrain backend: blocks keyed by world
// position, stored as zstd-compressed chunk payloads in a sqlite file.
// Writes buffer in memory per chunk; FlushAll makes them durable.
package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"voxplace.dev/internal/block"
	"voxplace.dev/internal/grid"
	"voxplace.dev/internal/mathx"
)

type chunkBuf struct {
	blocks []uint64
	dirty  bool
}

// Store buffers block writes per chunk and persists them to sqlite.
// Single-threaded by contract, like the rest of the pipeline.
type Store struct {
	db    *sql.DB
	runID string

	chunks  map[grid.ChunkKey]*chunkBuf
	codec   *codec
	written int
}

// Open creates or opens the terrain database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	c, err := newCodec()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		runID:  uuid.NewString(),
		chunks: map[grid.ChunkKey]*chunkBuf{},
		codec:  c,
	}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL for the bulk-write workload; NORMAL durability is fine for a
	// regenerable conversion output.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			blocks BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (cx, cy, cz)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SetBlock stages one block write. The owning chunk is pulled from the
// database on first touch so partial re-runs overlay instead of clobber.
func (s *Store) SetBlock(pos mathx.Vec3, b block.Block) error {
	key := grid.ChunkCoord(pos)
	buf, ok := s.chunks[key]
	if !ok {
		var err error
		buf, err = s.loadChunk(key)
		if err != nil {
			return err
		}
		s.chunks[key] = buf
	}
	i := mathx.Mod(pos.X, grid.ChunkSize) +
		mathx.Mod(pos.Y, grid.ChunkSize)*grid.ChunkSize +
		mathx.Mod(pos.Z, grid.ChunkSize)*grid.ChunkSize*grid.ChunkSize
	buf.blocks[i] = b.Pack()
	buf.dirty = true
	s.written++
	return nil
}

// GetBlock reads a staged or stored block; the empty block when neither
// exists.
func (s *Store) GetBlock(pos mathx.Vec3) (block.Block, error) {
	key := grid.ChunkCoord(pos)
	buf, ok := s.chunks[key]
	if !ok {
		var err error
		buf, err = s.loadChunk(key)
		if err != nil {
			return block.Block{}, err
		}
		s.chunks[key] = buf
	}
	i := mathx.Mod(pos.X, grid.ChunkSize) +
		mathx.Mod(pos.Y, grid.ChunkSize)*grid.ChunkSize +
		mathx.Mod(pos.Z, grid.ChunkSize)*grid.ChunkSize*grid.ChunkSize
	return block.Unpack(buf.blocks[i]), nil
}

func (s *Store) loadChunk(key grid.ChunkKey) (*chunkBuf, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT blocks FROM chunks WHERE cx = ? AND cy = ? AND cz = ?`,
		key.X, key.Y, key.Z,
	).Scan(&blob)
	switch {
	case err == sql.ErrNoRows:
		return &chunkBuf{blocks: make([]uint64, grid.ChunkVolume)}, nil
	case err != nil:
		return nil, fmt.Errorf("load chunk %v: %w", key, err)
	}
	blocks, err := s.codec.decode(blob)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %v: %w", key, err)
	}
	return &chunkBuf{blocks: blocks}, nil
}

// FlushAll writes every dirty chunk and the run metadata, then drops the
// in-memory buffers. Called once at the end of a run.
func (s *Store) FlushAll() error {
	keys := make([]grid.ChunkKey, 0, len(s.chunks))
	for k, buf := range s.chunks {
		if buf.dirty {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].Z < keys[j].Z
	})

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, k := range keys {
		blob, err := s.codec.encode(s.chunks[k].blocks)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode chunk %v: %w", k, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO chunks (cx, cy, cz, blocks, updated_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(cx, cy, cz) DO UPDATE SET blocks = excluded.blocks, updated_at = excluded.updated_at`,
			k.X, k.Y, k.Z, blob, now,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("flush chunk %v: %w", k, err)
		}
	}
	meta := map[string]string{
		"last_run_id":    s.runID,
		"last_run_at":    now,
		"blocks_written": fmt.Sprintf("%d", s.written),
	}
	for k, v := range meta {
		if _, err := tx.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, v,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("flush meta: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.chunks = map[grid.ChunkKey]*chunkBuf{}
	return nil
}

// RunID identifies this conversion run in the meta table.
func (s *Store) RunID() string { return s.runID }

// BlocksWritten counts SetBlock calls this run.
func (s *Store) BlocksWritten() int { return s.written }

func (s *Store) Close() error {
	s.codec.close()
	return s.db.Close()
}
