package cpu

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"hackasm/pkg/grid"
)

const (
	ScreenWidth  = 512
	ScreenHeight = 256

	screenRowWords = ScreenWidth / 16
)

// Pixel reports whether the screen pixel at (x, y) is set (black). Bit i of
// a screen word is the i-th pixel from the left of its 16-pixel group.
func (c *CPU) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	word := c.RAM[int(ScreenBase)+y*screenRowWords+x/16]
	return word&(1<<(x%16)) != 0
}

// GetFramebufferRGBA decodes screen memory into a 512×256 RGBA8888 byte
// slice: set pixels are black, clear pixels white.
func (c *CPU) GetFramebufferRGBA() []byte {
	pixels := make([]byte, ScreenWidth*ScreenHeight*4)
	for i := range pixels {
		pixels[i] = 0xFF
	}

	for wordIdx := 0; wordIdx < ScreenWords; wordIdx++ {
		word := c.RAM[int(ScreenBase)+wordIdx]
		if word == 0 {
			continue
		}
		col, row := grid.GetGridCoords(wordIdx, screenRowWords)
		for bit := 0; bit < 16; bit++ {
			if word&(1<<bit) == 0 {
				continue
			}
			p := (row*ScreenWidth + col*16 + bit) * 4
			pixels[p+0] = 0
			pixels[p+1] = 0
			pixels[p+2] = 0
		}
	}

	return pixels
}

// GetFramebufferImage returns the screen as an *image.RGBA.
func (c *CPU) GetFramebufferImage() *image.RGBA {
	return &image.RGBA{
		Pix:    c.GetFramebufferRGBA(),
		Stride: ScreenWidth * 4,
		Rect:   image.Rect(0, 0, ScreenWidth, ScreenHeight),
	}
}

// ScaledFramebuffer enlarges the screen by an integer factor with
// nearest-neighbour sampling so pixels stay sharp.
func (c *CPU) ScaledFramebuffer(scale int) *image.RGBA {
	src := c.GetFramebufferImage()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, ScreenWidth*scale, ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveScreenshot encodes the screen, scaled by scale, as a PNG file.
func (c *CPU) SaveScreenshot(filename string, scale int) error {
	img := c.ScaledFramebuffer(scale)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
