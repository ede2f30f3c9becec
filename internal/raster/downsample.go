package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample filters img down to w by h with Catmull-Rom interpolation.
// Alpha is premultiplied before filtering so translucent markers do not
// bleed fringes along their edges, then divided back out.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	src := image.NewRGBA(img.Bounds())
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		src.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * a / 255)
		src.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		src.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
		src.Pix[i+3] = uint8(a)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		a := uint32(dst.Pix[i+3])
		if a == 0 {
			continue
		}
		out.Pix[i+0] = clamp8(uint32(dst.Pix[i+0]) * 255 / a)
		out.Pix[i+1] = clamp8(uint32(dst.Pix[i+1]) * 255 / a)
		out.Pix[i+2] = clamp8(uint32(dst.Pix[i+2]) * 255 / a)
		out.Pix[i+3] = uint8(a)
	}
	return out
}

func clamp8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
