package frames

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writePNG(t *testing.T, dir, name string, w, h int, red uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(1, 0, color.NRGBA{R: red, A: 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestSequenceDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "b.png", 4, 3, 200),
		writePNG(t, dir, "a.png", 5, 2, 100),
	}
	seq, err := NewSequence(nil, paths, 4, nil)
	if err != nil {
		t.Fatalf("new sequence: %v", err)
	}
	if seq.Len() != 2 || seq.Name(0) != paths[0] || seq.Name(1) != paths[1] {
		t.Fatalf("sequence must keep the given order")
	}
	img, err := seq.Frame(0)
	if err != nil {
		t.Fatalf("frame 0: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 0).R; got != 200 {
		t.Fatalf("red = %d, want 200", got)
	}
	again, err := seq.Frame(0)
	if err != nil || again != img {
		t.Fatalf("second access should come from cache (err=%v)", err)
	}
	st := seq.Stats()
	if st.Decodes != 1 || st.Hits != 1 || st.Cached != 1 || st.Bytes != 4*3*4 {
		t.Fatalf("unexpected stats %+v", st)
	}
	seq.Purge()
	if seq.Stats().Cached != 0 {
		t.Fatalf("purge should empty the cache")
	}
}

func TestSequenceCorruptFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	seq, err := NewSequence(nil, []string{bad}, 0, nil)
	if err != nil {
		t.Fatalf("new sequence: %v", err)
	}
	if _, err := seq.Frame(0); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := seq.Frame(0); err == nil {
		t.Fatalf("failed frames must not be cached")
	}
	if st := seq.Stats(); st.Failures != 2 || st.Decodes != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if _, err := seq.Frame(5); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestSequenceCustomDecoder(t *testing.T) {
	calls := 0
	dec := func(path string) (image.Image, error) {
		calls++
		return image.NewGray(image.Rect(2, 2, 6, 5)), nil
	}
	seq, err := NewSequence(nil, []string{"x", "y", "z"}, 1, dec)
	if err != nil {
		t.Fatalf("new sequence: %v", err)
	}
	for _, i := range []int{0, 1, 0} {
		img, err := seq.Frame(i)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if img.Bounds() != image.Rect(0, 0, 4, 3) {
			t.Fatalf("frames must be rebased to the origin, got %v", img.Bounds())
		}
	}
	// cache of one evicts frame 0 when frame 1 is loaded
	if calls != 3 {
		t.Fatalf("decoder calls = %d, want 3", calls)
	}
}

func TestNewSequenceWithoutPaths(t *testing.T) {
	if _, err := NewSequence(nil, nil, 4, nil); !errors.Is(err, ErrNoPaths) {
		t.Fatalf("expected ErrNoPaths, got %v", err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"img2.png", "img1.png", "img3.png"} {
		writePNG(t, dir, n, 2, 2, 1)
	}
	explicit := []string{filepath.Join(dir, "img3.png"), filepath.Join(dir, "img1.png")}
	got, err := Expand(explicit)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if diff := cmp.Diff(explicit, got); diff != "" {
		t.Fatalf("explicit order changed (-want +got):\n%s", diff)
	}

	got, err = Expand([]string{filepath.Join(dir, "img*.png")})
	if err != nil {
		t.Fatalf("expand glob: %v", err)
	}
	want := []string{filepath.Join(dir, "img1.png"), filepath.Join(dir, "img2.png"), filepath.Join(dir, "img3.png")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("glob mismatch (-want +got):\n%s", diff)
	}

	if _, err := Expand([]string{filepath.Join(dir, "*.jpg")}); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if _, err := Expand(nil); !errors.Is(err, ErrNoPaths) {
		t.Fatalf("expected ErrNoPaths, got %v", err)
	}
}

func TestToRGBAIgnoresAlpha(t *testing.T) {
	translucent := color.NRGBA{R: 200, G: 10, B: 20, A: 128}
	nrgba := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	nrgba.SetNRGBA(3, 4, translucent)
	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.NRGBA{}, translucent})
	pal.SetColorIndex(1, 0, 1)
	premul := image.NewRGBA(image.Rect(0, 0, 2, 1))
	premul.Set(1, 0, translucent)

	for name, c := range map[string]struct {
		img image.Image
		at  image.Point
	}{
		"nrgba":    {nrgba, image.Pt(1, 1)},
		"paletted": {pal, image.Pt(1, 0)},
		"rgba":     {premul, image.Pt(1, 0)},
	} {
		out := ToRGBA(c.img)
		if out.Rect.Min != (image.Point{}) {
			t.Fatalf("%s: bounds = %v", name, out.Rect)
		}
		got := out.RGBAAt(c.at.X, c.at.Y)
		// RGBA stores premultiplied values so its red can be off by rounding
		if got.A != 255 || got.R < 199 || got.R > 200 {
			t.Fatalf("%s: pixel = %+v, want red 200 opaque", name, got)
		}
	}

	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	if ToRGBA(opaque) != opaque {
		t.Fatalf("opaque rgba at origin should be returned as is")
	}
}
