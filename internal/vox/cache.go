package vox

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"voxplace.dev/internal/mathx"
)

// Cache resolves model names to decoded files, decoding each asset at most
// once. A name that cannot be resolved or decoded is substituted with the
// built-in fallback marker so a bad piece degrades visibly instead of
// aborting the run.
type Cache struct {
	dir    string
	logger *log.Logger

	files    map[string]*File
	fallback *File
}

func NewCache(dir string, logger *log.Logger) *Cache {
	return &Cache{
		dir:      dir,
		logger:   logger,
		files:    map[string]*File{},
		fallback: FallbackFile(),
	}
}

// Resolve returns the decoded file for a model name. Never nil.
func (c *Cache) Resolve(name string) *File {
	if f, ok := c.files[name]; ok {
		return f
	}
	f, err := c.load(name)
	if err != nil {
		c.logger.Printf("could not load vox file for placement: %s: %v", name, err)
		f = c.fallback
	}
	c.files[name] = f
	return f
}

func (c *Cache) load(name string) (*File, error) {
	path := name
	if !strings.HasSuffix(path, ".vox") {
		path += ".vox"
	}
	fh, err := os.Open(filepath.Join(c.dir, filepath.FromSlash(path)))
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}

// FallbackFile builds the missing-asset marker: a solid magenta cube big
// enough to spot in the output.
func FallbackFile() *File {
	const n = 4
	m := Model{Size: mathx.V3(n, n, n)}
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				m.Voxels = append(m.Voxels, Voxel{X: uint8(x), Y: uint8(y), Z: uint8(z), Index: 1})
			}
		}
	}
	palette := defaultPalette()
	palette[1] = mathx.NewRgb(255, 0, 255)
	return &File{
		Models:  []Model{m},
		Palette: palette,
		Nodes:   defaultScene(1),
	}
}
