package overlay

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
)

// Store loads and caches decoded overlay assets from a brand's asset
// directory. Assets are normalized to NRGBA so the compositor can sample
// pixels directly.
type Store struct {
	mu    sync.RWMutex
	dir   string
	items map[string]*storeEntry
}

type storeEntry struct {
	img *image.NRGBA
	err error
}

// NewStore creates a store rooted at the given asset directory.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		items: make(map[string]*storeEntry),
	}
}

// Dir returns the asset directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the decoded asset with the given file name, loading it on
// first use. Load failures are cached too: a missing asset keeps failing
// fast instead of hitting the disk on every render.
func (s *Store) Get(name string) (*image.NRGBA, error) {
	s.mu.RLock()
	if entry, ok := s.items[name]; ok {
		s.mu.RUnlock()
		return entry.img, entry.err
	}
	s.mu.RUnlock()

	img, err := loadAsset(filepath.Join(s.dir, name))

	s.mu.Lock()
	if entry, ok := s.items[name]; ok {
		s.mu.Unlock()
		return entry.img, entry.err
	}
	s.items[name] = &storeEntry{img: img, err: err}
	s.mu.Unlock()

	return img, err
}

// loadAsset reads and decodes an overlay image file as NRGBA.
func loadAsset(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open overlay asset: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode overlay asset %s: %w", filepath.Base(path), err)
	}

	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to NRGBA format.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
