package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255}) // top-left red
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255}) // bottom-left blue
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, dir, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeFlipsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 2 {
		t.Fatalf("size %v", img.Rect)
	}
	// Row 0 in GL order is the picture's bottom row.
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("first texel %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("last row texel %v, want red", got)
	}
}

func TestDecodeFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	paths := []string{
		writeImage(t, dir, "metal.png", func(b *bytes.Buffer) error { return png.Encode(b, src) }),
		writeImage(t, dir, "metal.bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }),
	}
	for _, p := range paths {
		img, err := DecodeFile(p)
		if err != nil {
			t.Errorf("%s: %v", filepath.Base(p), err)
			continue
		}
		if img.Rect.Dx() != 2 {
			t.Errorf("%s: width %d", filepath.Base(p), img.Rect.Dx())
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected decode error")
	}
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	if p.Rect.Dx() != 1 || p.Rect.Dy() != 1 {
		t.Fatalf("placeholder size %v", p.Rect)
	}
	if got := p.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("placeholder texel %v, want opaque white", got)
	}
}

func TestBarrier(t *testing.T) {
	b := NewBarrier(2)
	if b.Done() {
		t.Fatal("barrier done before any load")
	}
	if b.Progress() != 0 {
		t.Errorf("progress %f, want 0", b.Progress())
	}

	b.Complete()
	if b.Done() {
		t.Fatal("barrier done after one of two loads")
	}
	if b.Progress() != 0.5 {
		t.Errorf("progress %f, want 0.5", b.Progress())
	}

	b.Complete()
	if !b.Done() {
		t.Fatal("barrier not done after two loads")
	}

	b.Complete()
	if c, e := b.Counts(); c != 2 || e != 2 {
		t.Errorf("counts %d/%d after extra completion, want 2/2", c, e)
	}
}

func TestBarrierEmpty(t *testing.T) {
	b := NewBarrier(0)
	if !b.Done() || b.Progress() != 1 {
		t.Error("empty barrier should be done immediately")
	}
}

// drain polls until n results arrived or the deadline passes.
func drain(t *testing.T, l *Loader, n int) []Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var out []Result
	for len(out) < n {
		if time.Now().After(deadline) {
			t.Fatalf("got %d of %d results", len(out), n)
		}
		out = append(out, l.Poll()...)
		time.Sleep(time.Millisecond)
	}
	return out
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	good := writeImage(t, dir, "glass.png", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })

	l := NewLoader([]Request{
		{Name: "glass", Path: good},
		{Name: "metal", Path: filepath.Join(dir, "missing.jpg")},
	}, time.Second)
	if l.Expected() != 2 {
		t.Fatalf("expected 2, got %d", l.Expected())
	}

	l.Start(context.Background())
	defer l.Stop()

	byName := map[string]Result{}
	for _, r := range drain(t, l, 2) {
		byName[r.Name] = r
	}

	if r := byName["glass"]; r.Err != nil || r.Image == nil {
		t.Errorf("glass: %v", r.Err)
	}
	if r := byName["metal"]; r.Err == nil || r.Image != nil {
		t.Error("metal: expected failure for missing file")
	}

	if extra := l.Poll(); len(extra) != 0 {
		t.Errorf("unexpected extra results: %d", len(extra))
	}
}

func TestLoaderTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	l := NewLoader([]Request{{Name: "glass", Path: "slow.png"}}, 20*time.Millisecond)
	l.fetch = func(string) (*image.RGBA, error) {
		<-block
		return Placeholder(), nil
	}
	l.Start(context.Background())

	res := drain(t, l, 1)
	if !errors.Is(res[0].Err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", res[0].Err)
	}
}

func TestLoaderBarrier(t *testing.T) {
	l := NewLoader([]Request{{Name: "a", Path: "a"}, {Name: "b", Path: "b"}, {Name: "c", Path: "c"}}, 0)
	l.fetch = func(path string) (*image.RGBA, error) {
		if path == "b" {
			return nil, errors.New("boom")
		}
		return Placeholder(), nil
	}
	l.Start(context.Background())

	b := NewBarrier(l.Expected())
	deadline := time.Now().Add(5 * time.Second)
	for !b.Done() {
		if time.Now().After(deadline) {
			t.Fatal("barrier never completed")
		}
		for range l.Poll() {
			b.Complete()
		}
		time.Sleep(time.Millisecond)
	}
}
