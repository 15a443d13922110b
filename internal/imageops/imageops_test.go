package imageops

import (
	"reflect"
	"testing"
)

func bmp(w, h int, px []byte) *Bitmap {
	return &Bitmap{Width: w, Height: h, Pix: px}
}

func TestRotate90(t *testing.T) {
	src := bmp(3, 2, []byte{1, 2, 3, 4, 5, 6})
	got := Rotate(src, Rotate90)
	want := bmp(2, 3, []byte{4, 1, 5, 2, 6, 3})
	if got.Width != want.Width || got.Height != want.Height || !reflect.DeepEqual(got.Pix, want.Pix) {
		t.Errorf("Rotate90: got %+v, want %+v", got, want)
	}
}

func TestRotate180(t *testing.T) {
	src := bmp(3, 2, []byte{1, 2, 3, 4, 5, 6})
	got := Rotate(src, Rotate180)
	want := bmp(3, 2, []byte{6, 5, 4, 3, 2, 1})
	if !reflect.DeepEqual(got.Pix, want.Pix) {
		t.Errorf("Rotate180: got %v, want %v", got.Pix, want.Pix)
	}
}

func TestRotate270(t *testing.T) {
	src := bmp(3, 2, []byte{1, 2, 3, 4, 5, 6})
	got := Rotate(src, Rotate270)
	want := bmp(2, 3, []byte{3, 6, 2, 5, 1, 4})
	if got.Width != want.Width || got.Height != want.Height || !reflect.DeepEqual(got.Pix, want.Pix) {
		t.Errorf("Rotate270: got %+v, want %+v", got, want)
	}
}

func TestGammaIdentity(t *testing.T) {
	lut := NewGammaLUT(1.0)
	src := bmp(2, 2, []byte{0, 64, 128, 255})
	got := Gamma(src, lut)
	if !reflect.DeepEqual(got.Pix, src.Pix) {
		t.Errorf("Gamma(1.0) should be identity: got %v, want %v", got.Pix, src.Pix)
	}
}

func TestGammaEndpoints(t *testing.T) {
	lut := NewGammaLUT(2.2)
	if lut[0] != 0 {
		t.Errorf("gamma(0) = %d, want 0", lut[0])
	}
	if lut[255] != 255 {
		t.Errorf("gamma(255) = %d, want 255", lut[255])
	}
}

func TestBoldWidensByOne(t *testing.T) {
	src := bmp(2, 1, []byte{0, 255})
	got := Bold(src)
	if got.Width != 3 {
		t.Fatalf("Bold width = %d, want 3", got.Width)
	}
	want := []byte{0, 255, 255}
	if !reflect.DeepEqual(got.Pix, want) {
		t.Errorf("Bold: got %v, want %v", got.Pix, want)
	}
}

func TestItalicSingleRowKeepsWidth(t *testing.T) {
	// height=1 -> no shear extent, width unchanged.
	src := bmp(2, 1, []byte{9, 9})
	got := Italic(src)
	if got.Width != 2 {
		t.Errorf("Italic height=1 width = %d, want 2", got.Width)
	}
}

func TestCropAllZero(t *testing.T) {
	src := bmp(3, 3, make([]byte, 9))
	got, info := Crop(src)
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("Crop of all-zero: got %dx%d, want 0x0", got.Width, got.Height)
	}
	if info != (CropInfo{}) {
		t.Errorf("Crop info of all-zero: got %+v, want zero value", info)
	}
}

func TestCropTightensToInk(t *testing.T) {
	// 4x4, single ink pixel at (2,1).
	src := bmp(4, 4, make([]byte, 16))
	src.Pix[1*4+2] = 200
	got, info := Crop(src)
	if got.Width != 1 || got.Height != 1 {
		t.Fatalf("Crop size = %dx%d, want 1x1", got.Width, got.Height)
	}
	if info.TopSkip != 1 || info.LeftSkip != 2 || info.ValidWidth != 1 || info.ValidHeight != 1 {
		t.Errorf("CropInfo = %+v, want {1,2,1,1}", info)
	}
	if got.Pix[0] != 200 {
		t.Errorf("cropped pixel = %d, want 200", got.Pix[0])
	}
}

func TestPadToAlignment(t *testing.T) {
	src := bmp(3, 5, make([]byte, 15))
	got := PadToAlignment(src)
	if got.Width != 8 || got.Height != 8 {
		t.Errorf("PadToAlignment size = %dx%d, want 8x8", got.Width, got.Height)
	}
}

func TestPadToAlignmentAlreadyAligned(t *testing.T) {
	src := bmp(8, 16, make([]byte, 128))
	got := PadToAlignment(src)
	if got.Width != 8 || got.Height != 16 {
		t.Errorf("PadToAlignment of aligned input changed size: got %dx%d", got.Width, got.Height)
	}
}

func TestPack1bpp(t *testing.T) {
	// 8x1 row, alternating max/min pixels -> 0b10101010 = 0xAA.
	px := []byte{255, 0, 255, 0, 255, 0, 255, 0}
	src := bmp(8, 1, px)
	got := Pack(src, 1)
	want := []byte{0xAA}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pack(1bpp) = %v, want %v", got, want)
	}
}

func TestPack4bpp(t *testing.T) {
	// 8x1 row, pairs of pixels quantized to nibble 15 and 0.
	px := []byte{255, 255, 0, 0, 255, 255, 0, 0}
	src := bmp(8, 1, px)
	got := Pack(src, 4)
	want := []byte{0xFF, 0x00, 0xFF, 0x00}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pack(4bpp) = %v, want %v", got, want)
	}
}

func TestPack8bppIsIdentity(t *testing.T) {
	px := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	src := bmp(8, 1, px)
	got := Pack(src, 8)
	if !reflect.DeepEqual(got, px) {
		t.Errorf("Pack(8bpp) = %v, want %v", got, px)
	}
}

func TestPackRowsNotPaddedAcrossBoundary(t *testing.T) {
	// Two 8-wide rows at 2bpp should produce 2 bytes each, independently.
	row0 := []byte{255, 255, 255, 255, 0, 0, 0, 0}
	row1 := []byte{0, 0, 0, 0, 255, 255, 255, 255}
	src := bmp(8, 2, append(append([]byte{}, row0...), row1...))
	got := Pack(src, 2)
	if len(got) != 4 {
		t.Fatalf("Pack output length = %d, want 4", len(got))
	}
	want := []byte{0xFF, 0x00, 0x00, 0xFF}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pack rows = %v, want %v", got, want)
	}
}
