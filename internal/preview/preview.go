package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// Mode selects what the map colors encode.
type Mode int

const (
	// ModeBiome tints each column by its biome, shaded by height.
	ModeBiome Mode = iota
	// ModeHeight renders a grayscale height map.
	ModeHeight
)

const (
	legendPadding = 6
	legendSwatch  = 12
	legendFontPx  = 12
)

// Options controls the sampled area and output size.
type Options struct {
	Width, Height    int
	OriginX, OriginZ float64 // world voxel coordinate of the top-left pixel
	Scale            float64 // voxels per pixel
	Mode             Mode
	Legend           bool
}

// DefaultOptions samples a 512x512 area centred on the origin, one voxel per pixel.
func DefaultOptions() Options {
	return Options{
		Width:   512,
		Height:  512,
		OriginX: -256,
		OriginZ: -256,
		Scale:   1,
		Mode:    ModeBiome,
		Legend:  true,
	}
}

// Render samples the generator's height and biome fields into an image.
func Render(gen *world.TerrainGenerator, opts Options) (*image.NRGBA, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("invalid preview scale %v", opts.Scale)
	}

	n := opts.Width * opts.Height
	heights := make([]float64, n)
	biomes := make([]world.BiomeID, n)
	lo, hi := 0.0, 0.0
	for py := range opts.Height {
		z := opts.OriginZ + float64(py)*opts.Scale
		for px := range opts.Width {
			x := opts.OriginX + float64(px)*opts.Scale
			h, b := gen.Column(x, z)
			i := px + py*opts.Width
			heights[i], biomes[i] = h, b
			if i == 0 || h < lo {
				lo = h
			}
			if i == 0 || h > hi {
				hi = h
			}
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	span := hi - lo
	for i, h := range heights {
		t := 0.5
		if span > 0 {
			t = (h - lo) / span
		}
		img.SetNRGBA(i%opts.Width, i/opts.Width, columnColor(opts.Mode, biomes[i], t))
	}

	if opts.Legend && opts.Mode == ModeBiome {
		if err := drawLegend(img); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func columnColor(mode Mode, b world.BiomeID, t float64) color.NRGBA {
	if mode == ModeHeight {
		v := uint8(clamp(t, 0, 1) * 255)
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	}
	base := b.Info().Color
	return shade(color.NRGBA{R: base.R, G: base.G, B: base.B, A: 255}, 0.55+0.45*t)
}

func shade(c color.NRGBA, factor float64) color.NRGBA {
	factor = clamp(factor, 0, 1)
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func legendFace() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: legendFontPx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// drawLegend paints one swatch and name per biome in the top-left corner.
func drawLegend(img *image.NRGBA) error {
	face, err := legendFace()
	if err != nil {
		return err
	}
	defer func() { _ = face.Close() }()

	biomes := world.AllBiomes()
	lineH := max(legendSwatch, face.Metrics().Height.Ceil()) + 2
	textW := 0
	for _, b := range biomes {
		textW = max(textW, font.MeasureString(face, b.Name).Ceil())
	}
	box := image.Rect(0, 0,
		legendPadding*3+legendSwatch+textW,
		legendPadding*2+lineH*len(biomes)).Intersect(img.Bounds())
	draw.Draw(img, box, &image.Uniform{color.NRGBA{R: 10, G: 10, B: 18, A: 200}}, image.Point{}, draw.Over)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, b := range biomes {
		top := legendPadding + i*lineH
		sw := image.Rect(legendPadding, top, legendPadding+legendSwatch, top+legendSwatch)
		draw.Draw(img, sw, &image.Uniform{b.Color}, image.Point{}, draw.Src)
		d.Dot = fixed.P(legendPadding*2+legendSwatch, top+ascent)
		d.DrawString(b.Name)
	}
	return nil
}

// Save encodes img as PNG at path, creating parent directories.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
