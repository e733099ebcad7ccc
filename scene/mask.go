package scene

import (
	"fmt"
	"image"
	"os"

	// Mask formats. PNG is the common case, the rest come from x/image.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/draw"
)

// DefaultMaskCacheSize is the number of scaled masks kept by default.
const DefaultMaskCacheSize = 64

// MaskCache loads hit masks from image files and keeps recently used ones
// scaled to the size they were requested at.
type MaskCache struct {
	cache *lru.Cache
}

type maskKey struct {
	path string
	w, h int
}

// NewMaskCache creates a cache holding up to size masks.
func NewMaskCache(size int) (*MaskCache, error) {
	if size <= 0 {
		size = DefaultMaskCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MaskCache{cache: c}, nil
}

// Mask returns the alpha channel of the image at path scaled to w x h.
func (mc *MaskCache) Mask(path string, w, h int) (*image.Alpha, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("mask %s: empty size %dx%d", path, w, h)
	}
	key := maskKey{path: path, w: w, h: h}
	if v, ok := mc.cache.Get(key); ok {
		return v.(*image.Alpha), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mask: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode mask %s: %w", path, err)
	}

	mask := ScaleAlpha(src, w, h)
	mc.cache.Add(key, mask)
	return mask, nil
}

// Len returns the number of cached masks.
func (mc *MaskCache) Len() int {
	return mc.cache.Len()
}

// ScaleAlpha extracts the alpha channel of src scaled to w x h.
func ScaleAlpha(src image.Image, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
