package scene

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-theft-auto/surface"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	snapshotBackground = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	snapshotFill       = color.RGBA{R: 60, G: 90, B: 140, A: 255}
	snapshotGroup      = color.RGBA{R: 48, G: 48, B: 56, A: 255}
	snapshotInert      = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	snapshotFocus      = color.RGBA{R: 240, G: 180, B: 40, A: 255}
	snapshotLabel      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Snapshot paints the scene's live widgets bottom to top with their names,
// outlining focused. Masked widgets are painted through their mask.
func (s *Scene) Snapshot(focused surface.Widget) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(s.size.X), int(s.size.Y)))
	draw.Draw(img, img.Bounds(), image.NewUniform(snapshotBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for _, b := range s.paint[1:] {
		if b.dead {
			continue
		}
		r := image.Rect(int(b.rect.X), int(b.rect.Y), int(b.rect.X+b.rect.W), int(b.rect.Y+b.rect.H))
		fill := snapshotFill
		switch {
		case isGroup(b):
			fill = snapshotGroup
		case !b.interactive && !b.yields:
			fill = snapshotInert
		}
		if b.mask != nil {
			draw.DrawMask(img, r, image.NewUniform(fill), image.Point{}, b.mask, image.Point{}, draw.Over)
		} else {
			draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Over)
		}
		if focused != nil && b.id == focused.ID() {
			outline(img, r, snapshotFocus)
		}

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(snapshotLabel),
			Face: face,
			Dot:  fixed.P(r.Min.X+3, r.Min.Y+face.Ascent+2),
		}
		d.DrawString(b.name)
	}
	return img
}

func isGroup(b *base) bool {
	_, ok := b.self.(*Group)
	return ok
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}
