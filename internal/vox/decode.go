package vox

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"voxplace.dev/internal/mathx"
)

const magicNumber = "VOX "

// Decode parses a MagicaVoxel .vox stream: the SIZE/XYZI/RGBA model chunks
// plus the nTRN/nGRP/nSHP scene records of the extended format. Unknown
// chunk ids are skipped. Files without scene records get a synthesized
// root that places every model at the origin.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 || string(data[:4]) != magicNumber {
		return nil, errors.New("not a valid VOX file")
	}
	f := &File{
		Version: int(binary.LittleEndian.Uint32(data[4:8])),
		Palette: defaultPalette(),
	}

	nodes := map[int]Node{}
	maxNode := -1

	pos := 8
	for pos+12 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += 12 // children size unused: all content chunks are leaves
		if pos+size > len(data) {
			return nil, fmt.Errorf("chunk %s overruns file", id)
		}
		body := data[pos : pos+size]
		pos += size

		c := &cursor{data: body}
		switch id {
		case "MAIN":
			// Container chunk, content lives in its children.
		case "SIZE":
			f.Models = append(f.Models, Model{Size: mathx.V3(
				int(c.u32()), int(c.u32()), int(c.u32()),
			)})
		case "XYZI":
			if len(f.Models) == 0 {
				return nil, errors.New("XYZI chunk before SIZE")
			}
			m := &f.Models[len(f.Models)-1]
			n := int(c.u32())
			m.Voxels = make([]Voxel, 0, n)
			for i := 0; i < n && c.err == nil; i++ {
				b := c.bytes(4)
				if c.err == nil {
					m.Voxels = append(m.Voxels, Voxel{X: b[0], Y: b[1], Z: b[2], Index: b[3]})
				}
			}
		case "RGBA":
			// Color i of the chunk is addressed by voxel index i+1.
			for i := 0; i+4 <= len(body) && i/4+1 < 256; i += 4 {
				f.Palette[i/4+1] = mathx.NewRgb(body[i], body[i+1], body[i+2])
			}
		case "nTRN":
			nid := int(c.u32())
			c.dict()
			child := int(int32(c.u32()))
			c.u32() // reserved
			c.u32() // layer
			frames := int(c.u32())
			node := Node{Kind: NodeTransform, Child: child}
			for i := 0; i < frames && c.err == nil; i++ {
				node.Frames = append(node.Frames, parseFrame(c.dict()))
			}
			nodes[nid] = node
			maxNode = max(maxNode, nid)
		case "nGRP":
			nid := int(c.u32())
			c.dict()
			n := int(c.u32())
			node := Node{Kind: NodeGroup}
			for i := 0; i < n && c.err == nil; i++ {
				node.Children = append(node.Children, int(int32(c.u32())))
			}
			nodes[nid] = node
			maxNode = max(maxNode, nid)
		case "nSHP":
			nid := int(c.u32())
			c.dict()
			n := int(c.u32())
			node := Node{Kind: NodeShape}
			for i := 0; i < n && c.err == nil; i++ {
				node.Models = append(node.Models, int(int32(c.u32())))
				c.dict()
			}
			nodes[nid] = node
			maxNode = max(maxNode, nid)
		}
		if c.err != nil {
			return nil, fmt.Errorf("chunk %s: %w", id, c.err)
		}
	}

	if len(nodes) > 0 {
		f.Nodes = make([]Node, maxNode+1)
		for i := range f.Nodes {
			f.Nodes[i] = Node{Kind: NodeGroup} // inert filler for id gaps
		}
		for nid, n := range nodes {
			f.Nodes[nid] = n
		}
	} else {
		f.Nodes = defaultScene(len(f.Models))
	}
	return f, nil
}

// defaultScene covers pre-0.99 files that carry no scene records: a root
// transform over a group holding one shape per model.
func defaultScene(models int) []Node {
	nodes := []Node{
		{Kind: NodeTransform, Child: 1, Frames: []Frame{{}}},
		{Kind: NodeGroup},
	}
	for i := 0; i < models; i++ {
		nodes[1].Children = append(nodes[1].Children, len(nodes))
		nodes = append(nodes, Node{Kind: NodeShape, Models: []int{i}})
	}
	return nodes
}

// parseFrame extracts the placement attributes of one transform frame.
// Malformed values are tolerated and read as absent.
func parseFrame(d map[string]string) Frame {
	var fr Frame
	if t, ok := d["_t"]; ok {
		parts := strings.Split(t, " ")
		if len(parts) == 3 {
			x, ex := strconv.Atoi(parts[0])
			y, ey := strconv.Atoi(parts[1])
			z, ez := strconv.Atoi(parts[2])
			if ex == nil && ey == nil && ez == nil {
				fr.Translation = mathx.V3(x, y, z)
				fr.HasTranslation = true
			}
		}
	}
	if r, ok := d["_r"]; ok {
		if n, err := strconv.ParseUint(r, 10, 8); err == nil {
			fr.Rotation = uint8(n)
			fr.HasRotation = true
		}
	}
	return fr
}

// cursor is a bounds-checked little-endian reader over one chunk body.
// The first failure sticks.
type cursor struct {
	data []byte
	pos  int
	err  error
}

func (c *cursor) u32() uint32 {
	b := c.bytes(4)
	if c.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.pos+n > len(c.data) {
		c.err = io.ErrUnexpectedEOF
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) str() string {
	n := int(c.u32())
	return string(c.bytes(n))
}

func (c *cursor) dict() map[string]string {
	n := int(c.u32())
	d := make(map[string]string, n)
	for i := 0; i < n && c.err == nil; i++ {
		k := c.str()
		v := c.str()
		if c.err == nil {
			d[k] = v
		}
	}
	return d
}

func defaultPalette() []mathx.Rgb {
	p := make([]mathx.Rgb, 256)
	for i := range p {
		p[i] = mathx.NewRgb(255, 255, 255)
	}
	return p
}
