package persist

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"voxplace.dev/internal/grid"
)

// payloadV1 is the stored form of one chunk: the packed block array in
// x-then-y-then-z order.
type payloadV1 struct {
	Version int
	Blocks  []uint64
}

// codec gob-encodes chunk payloads and compresses them with zstd. One
// encoder/decoder pair is shared per store via EncodeAll/DecodeAll.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec() (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) encode(blocks []uint64) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payloadV1{Version: 1, Blocks: blocks}); err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(buf.Bytes(), nil), nil
}

func (c *codec) decode(blob []byte) ([]uint64, error) {
	raw, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	var p payloadV1
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&p); err != nil {
		return nil, err
	}
	if p.Version != 1 {
		return nil, fmt.Errorf("unknown chunk payload version %d", p.Version)
	}
	if len(p.Blocks) != grid.ChunkVolume {
		return nil, fmt.Errorf("chunk payload has %d blocks, want %d", len(p.Blocks), grid.ChunkVolume)
	}
	return p.Blocks, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}
