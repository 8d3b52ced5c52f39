package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	// extra decoders for imaging.Open
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultCacheSize is used when a non-positive cache size is requested.
	DefaultCacheSize = 16
	statsLogEvery    = 64
)

// Sequence is the ordered list of scan images. Decoded frames are kept in an LRU cache
// so repeated cycles over the same files do not decode every frame again.
type Sequence struct {
	paths  []string
	decode Decoder
	cache  *lru.Cache[int, *image.RGBA]
	logger *slog.Logger

	decodes     atomic.Uint64
	failures    atomic.Uint64
	hits        atomic.Uint64
	decodeNanos atomic.Uint64
	bytes       atomic.Uint64
}

// NewSequence keeps paths in the given order. A nil decoder selects DecodeFile.
func NewSequence(logger *slog.Logger, paths []string, cacheSize int, decode Decoder) (*Sequence, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[int, *image.RGBA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("frame cache: %w", err)
	}
	if decode == nil {
		decode = DecodeFile
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	return &Sequence{paths: cp, decode: decode, cache: cache, logger: logger}, nil
}

// DecodeFile decodes an image file applying its EXIF orientation.
func DecodeFile(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.paths) }

// Name returns the file path of frame i.
func (s *Sequence) Name(i int) string {
	if i < 0 || i >= len(s.paths) {
		return ""
	}
	return s.paths[i]
}

// Frame returns frame i as RGBA with its origin at (0,0). Callers must not modify it.
func (s *Sequence) Frame(i int) (*image.RGBA, error) {
	if i < 0 || i >= len(s.paths) {
		return nil, fmt.Errorf("%w: %d", ErrIndex, i)
	}
	if img, ok := s.cache.Get(i); ok {
		s.hits.Add(1)
		return img, nil
	}
	start := time.Now()
	src, err := s.decode(s.paths[i])
	if err != nil {
		s.failures.Add(1)
		return nil, fmt.Errorf("decode %s: %w", s.paths[i], err)
	}
	img := ToRGBA(src)
	s.decodeNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.bytes.Add(uint64(len(img.Pix)))
	if n := s.decodes.Add(1); n%statsLogEvery == 0 {
		s.logStats()
	}
	s.cache.Add(i, img)
	return img, nil
}

// Purge drops all cached frames.
func (s *Sequence) Purge() { s.cache.Purge() }

// Stats returns decode counters.
func (s *Sequence) Stats() Stats {
	decodes := s.decodes.Load()
	var avg time.Duration
	if decodes > 0 {
		avg = time.Duration(s.decodeNanos.Load() / decodes)
	}
	return Stats{
		Frames:    len(s.paths),
		Decodes:   decodes,
		Failures:  s.failures.Load(),
		Hits:      s.hits.Load(),
		Cached:    s.cache.Len(),
		AvgDecode: avg,
		Bytes:     s.bytes.Load(),
	}
}

func (s *Sequence) logStats() {
	if s.logger == nil {
		return
	}
	st := s.Stats()
	s.logger.Debug("frames.stats",
		"decodes", st.Decodes,
		"failures", st.Failures,
		"hits", st.Hits,
		"cached", st.Cached,
		"avg_decode", st.AvgDecode,
		"decoded", humanize.Bytes(st.Bytes),
	)
}

// ToRGBA returns img as *image.RGBA with bounds starting at (0,0), copying when needed.
// Alpha is dropped: every pixel keeps its unpremultiplied color and becomes opaque.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Opaque() {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := out.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				copy(out.Pix[di:di+3], src.Pix[si:si+3])
				out.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
	default:
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
			return out
		}
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
			}
		}
	}
	return out
}

// Expand resolves operator arguments into paths. Plain paths are kept as given; arguments
// containing glob metacharacters are replaced by their matches in lexical order.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if !hasMeta(a) {
			out = append(out, a)
			continue
		}
		matches, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", a, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, a)
		}
		out = append(out, matches...)
	}
	if len(out) == 0 {
		return nil, ErrNoPaths
	}
	return out, nil
}

func hasMeta(p string) bool {
	for _, c := range p {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
