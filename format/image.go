package format

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register the gif decoder for image.Decode
	"image/png"
	"io"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

/*

Images: each pixel is one cell, and the palette is inferred from
the distinct pixel colors.  This is how most puzzles start life,
as tiny pixel-art files.

*/

// maxImagePalette guards against accidentally feeding a
// photograph to the importer.
const maxImagePalette = 32

// ImportImage reads a PNG or GIF whose pixels are the solved
// grid.  The lightest color is taken to be the background.
func ImportImage(r io.Reader) (*puzzle.Summary, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode image: %v", err)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	// collect the distinct colors in reading order
	type rgb = [3]byte
	index := map[rgb]int{}
	var order []rgb
	pixels := make([]rgb, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			px := rgb{byte(r16 >> 8), byte(g16 >> 8), byte(b16 >> 8)}
			if _, ok := index[px]; !ok {
				index[px] = len(order)
				order = append(order, px)
			}
			pixels = append(pixels, px)
		}
	}
	if len(order) > maxImagePalette {
		return nil, fmt.Errorf("image has %d distinct colors; is it really pixel art?", len(order))
	}

	// the lightest color is the background
	lightest := 0
	for i, px := range order {
		if brightness(px) > brightness(order[lightest]) {
			lightest = i
		}
	}

	// palette slots: background first, the rest ordered by first
	// appearance
	slots := make([]int, len(order))
	pal := puzzle.Palette{imageColorInfo(order[lightest], 0)}
	slots[lightest] = 0
	next := 1
	for i, px := range order {
		if i == lightest {
			continue
		}
		slots[i] = next
		pal = append(pal, imageColorInfo(px, next))
		next++
	}

	values := make([]puzzle.Color, len(pixels))
	for i, px := range pixels {
		values[i] = puzzle.Color(slots[index[px]])
	}
	return &puzzle.Summary{
		Width:   width,
		Height:  height,
		Palette: pal,
		Values:  values,
	}, nil
}

// brightness is a standard luma approximation.
func brightness(px [3]byte) int {
	return 299*int(px[0]) + 587*int(px[1]) + 114*int(px[2])
}

// imageGlyphs supplies display glyphs for imported colors.
var imageGlyphs = []string{".", "#", "a", "b", "c", "d", "e", "f", "g", "h",
	"i", "j", "k", "l", "m", "n", "o", "p", "q", "s", "t", "u", "v", "z",
	"1", "2", "3", "4", "5", "6", "7", "8"}

func imageColorInfo(px [3]byte, slot int) puzzle.ColorInfo {
	ch := "?"
	if slot < len(imageGlyphs) {
		ch = imageGlyphs[slot]
	}
	return puzzle.ColorInfo{
		Ch:   ch,
		Name: fmt.Sprintf("#%02X%02X%02X", px[0], px[1], px[2]),
		RGB:  px,
	}
}

// ExportImage writes a solved-grid Summary as a PNG, one pixel
// per cell.
func ExportImage(w io.Writer, s *puzzle.Summary) error {
	if len(s.Values) != s.Width*s.Height {
		return fmt.Errorf("image export needs a solved grid")
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			ci := s.Palette[s.Values[r*s.Width+c]]
			img.Set(c, r, color.RGBA{ci.RGB[0], ci.RGB[1], ci.RGB[2], 255})
		}
	}
	return png.Encode(w, img)
}
