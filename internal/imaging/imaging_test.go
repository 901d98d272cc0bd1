package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReencodeJPEGFromPNG(t *testing.T) {
	data, err := ReencodeJPEG(testPNG(t, 16, 9))
	if err != nil {
		t.Fatal(err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid JPEG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 9 {
		t.Errorf("dimensions changed: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestReencodeJPEGPassesThroughJPEG(t *testing.T) {
	first, err := ReencodeJPEG(testPNG(t, 8, 8))
	if err != nil {
		t.Fatal(err)
	}

	second, err := ReencodeJPEG(first)
	if err != nil {
		t.Fatalf("re-encoding a JPEG should work: %v", err)
	}

	if _, err := jpeg.Decode(bytes.NewReader(second)); err != nil {
		t.Fatalf("output is not valid JPEG: %v", err)
	}
}

func TestReencodeJPEGRejectsGarbage(t *testing.T) {
	if _, err := ReencodeJPEG([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
