package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Image is a tightly packed 8-bit RGB pixel buffer, bottom row first so it
// can be uploaded to OpenGL without flipping texture coordinates.
type Image struct {
	Width, Height int
	Pix           []byte
}

// LoadImage decodes a PNG, JPEG or BMP file from disk.
func LoadImage(path string) (Image, error) {
	return LoadImageFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadImageFS decodes a PNG, JPEG or BMP image from fsys.
func LoadImageFS(fsys fs.FS, name string) (Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()
	return decodeImage(name, f)
}

func decodeImage(name string, r io.Reader) (Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("decode image %q: %w", name, err)
	}

	b := img.Bounds()
	// Non-premultiplied so translucent texels keep their colour once alpha
	// is dropped.
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride:]
		dst := out[(h-1-y)*w*3:]
		for x := 0; x < w; x++ {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return Image{Width: w, Height: h, Pix: out}, nil
}
