package persist

import (
	"path/filepath"
	"testing"

	"voxplace.dev/internal/block"
	"voxplace.dev/internal/mathx"
)

func open(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestSetFlushReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.db")

	s := open(t, path)
	want := block.Solid(block.KindMisc, mathx.NewRgb(4, 119, 191))
	positions := []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(31, 31, 31),
		mathx.V3(-1, -1, -1), // neighbor chunk across the origin
		mathx.V3(100, -200, 300),
	}
	for _, p := range positions {
		if err := s.SetBlock(p, want); err != nil {
			t.Fatalf("set %v: %v", p, err)
		}
	}
	if s.BlocksWritten() != len(positions) {
		t.Fatalf("counted %d writes, want %d", s.BlocksWritten(), len(positions))
	}
	if err := s.FlushAll(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s = open(t, path)
	defer s.Close()
	for _, p := range positions {
		got, err := s.GetBlock(p)
		if err != nil {
			t.Fatalf("get %v: %v", p, err)
		}
		if got != want {
			t.Fatalf("block at %v = %+v, want %+v", p, got, want)
		}
	}

	// Untouched positions read as the empty block.
	got, err := s.GetBlock(mathx.V3(5, 5, 5))
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("untouched position should be empty, got %+v", got)
	}
}

func TestRerunOverlaysExistingChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.db")

	s := open(t, path)
	first := block.Solid(block.KindMisc, mathx.NewRgb(1, 1, 1))
	if err := s.SetBlock(mathx.V3(0, 0, 0), first); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.FlushAll(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	_ = s.Close()

	// A second run touching the same chunk must not clobber the first
	// run's blocks.
	s = open(t, path)
	second := block.Solid(block.KindLava, mathx.NewRgb(255, 65, 0))
	if err := s.SetBlock(mathx.V3(1, 0, 0), second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.FlushAll(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	_ = s.Close()

	s = open(t, path)
	defer s.Close()
	for pos, want := range map[mathx.Vec3]block.Block{
		mathx.V3(0, 0, 0): first,
		mathx.V3(1, 0, 0): second,
	} {
		got, err := s.GetBlock(pos)
		if err != nil {
			t.Fatalf("get %v: %v", pos, err)
		}
		if got != want {
			t.Fatalf("block at %v = %+v, want %+v", pos, got, want)
		}
	}
}

func TestFlushWritesRunMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.db")

	s := open(t, path)
	if err := s.SetBlock(mathx.V3(0, 0, 0), block.Solid(block.KindMisc, mathx.Rgb{})); err != nil {
		t.Fatalf("set: %v", err)
	}
	runID := s.RunID()
	if runID == "" {
		t.Fatalf("run id should be set at open")
	}
	if err := s.FlushAll(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	var got string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_run_id'`).Scan(&got); err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if got != runID {
		t.Fatalf("meta run id = %q, want %q", got, runID)
	}
	_ = s.Close()
}

func TestCodecRoundTrip(t *testing.T) {
	c, err := newCodec()
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	defer c.close()

	blocks := make([]uint64, 32*32*32)
	blocks[0] = block.Solid(block.KindMisc, mathx.NewRgb(9, 8, 7)).Pack()
	blocks[len(blocks)-1] = block.Air(block.SpriteStreetLamp).Pack()

	blob, err := c.encode(blocks)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := c.decode(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0] != blocks[0] || got[len(got)-1] != blocks[len(blocks)-1] {
		t.Fatalf("payload changed across the round trip")
	}
}

func TestCodecRejectsWrongLength(t *testing.T) {
	c, err := newCodec()
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	defer c.close()

	blob, err := c.encode(make([]uint64, 8))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.decode(blob); err == nil {
		t.Fatalf("expected a length error for a short payload")
	}
}
