package scene

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/frame"
	"github.com/san-kum/partviz/internal/geom"
)

// voxelChunk is the smallest run of pixels handed to one worker.
const voxelChunk = 1 << 16

// DefaultVolumeColors tint the first two species when no colors are given.
var DefaultVolumeColors = []string{"#a6cee3", "#fb9a99"}

// VolumeOptions configures DenseArray.
type VolumeOptions struct {
	// Length is the texture side in voxels; its square root is the number
	// of slices per atlas row. 256 and 64 are typical.
	Length int
	// Ranges bounds the histogram; nil uses the data bounds.
	Ranges *frame.Box
	// Colors tint each species in order; missing entries use the scale.
	Colors []string
	Grid   bool
	Camera Camera
}

// DenseArray builds a volume model: each species is binned into a sparse
// Length^3 histogram, tinted with its color, summed, and unfolded into a
// square PNG atlas of Length slices.
func DenseArray(species [][]geom.Vec3, opts VolumeOptions, colors *colorscale.Scale) (*Widget, error) {
	n := opts.Length
	side := int(math.Round(math.Sqrt(float64(n))))
	if n <= 0 || side*side != n {
		return nil, fmt.Errorf("%w: %d", ErrTextureSize, n)
	}
	colors = scaleOrNew(colors)
	if opts.Colors == nil {
		opts.Colors = DefaultVolumeColors
	}

	box := boundsOf(species)
	if opts.Ranges != nil {
		box = *opts.Ranges
	}

	vox := make(map[int][3]float64)
	for i, pts := range species {
		var hex string
		if i < len(opts.Colors) {
			hex = opts.Colors[i]
		} else {
			hex = colors.Color(fmt.Sprintf("volume%d", i))
		}
		r, g, b, err := colorscale.RGB(hex)
		if err != nil {
			return nil, fmt.Errorf("species %d: %w", i, err)
		}
		h, peak := histogram(pts, box, n)
		tint(vox, h, peak, [3]float64{float64(r), float64(g), float64(b)})
	}

	img := unfold(vox, n, side)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	m := Model{
		Plots: []Plot{{
			Type: TypeVolume,
			Data: url,
			Options: PlotOptions{
				Width:   n,
				Height:  n,
				Depth:   n,
				FPerRow: side,
				FPerCol: side,
			},
		}},
		Options: Options{Grid: opts.Grid, SaveImage: true},
	}
	return &Widget{
		ID:       newID("viz"),
		Template: TemplateParticles,
		Model:    m,
		Camera:   cameraOr(opts.Camera),
		Colors:   colors.Config(),
	}, nil
}

// boundsOf returns the raw data bounds of every species.
func boundsOf(species [][]geom.Vec3) frame.Box {
	var all []geom.Vec3
	for _, pts := range species {
		all = append(all, pts...)
	}
	lo, hi, ok := frame.Bounds(all)
	if !ok {
		return frame.Box{X: frame.Range{0, 1}, Y: frame.Range{0, 1}, Z: frame.Range{0, 1}}
	}
	return frame.Box{X: frame.Range{lo.X, hi.X}, Y: frame.Range{lo.Y, hi.Y}, Z: frame.Range{lo.Z, hi.Z}}
}

// bin maps v into [0, n). The upper edge belongs to the last bin; values
// outside r are dropped. A zero-width range is widened by 0.5 on both sides.
func bin(v float64, r frame.Range, n int) (int, bool) {
	lo, hi := r[0], r[1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	if v < lo || v > hi {
		return 0, false
	}
	i := int((v - lo) / (hi - lo) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i, true
}

// histogram counts pts per occupied voxel, keyed x*n*n+y*n+z, and returns
// the largest count.
func histogram(pts []geom.Vec3, box frame.Box, n int) (map[int]float64, float64) {
	h := make(map[int]float64)
	peak := 0.0
	for _, p := range pts {
		ix, okx := bin(p.X, box.X, n)
		iy, oky := bin(p.Y, box.Y, n)
		iz, okz := bin(p.Z, box.Z, n)
		if okx && oky && okz {
			k := ix*n*n + iy*n + iz
			h[k]++
			peak = math.Max(peak, h[k])
		}
	}
	return h, peak
}

// tint adds h, normalized to peak and scaled by rgb, into vox.
func tint(vox map[int][3]float64, h map[int]float64, peak float64, rgb [3]float64) {
	if peak == 0 {
		return
	}
	for k, c := range h {
		v := vox[k]
		for j := range v {
			v[j] += rgb[j] * c / peak
		}
		vox[k] = v
	}
}

// unfold lays out the n x-slices as a side x side grid of n x n tiles; tile k
// sits at row k/side, column k%side, with y down and z across. Empty voxels
// are opaque black.
func unfold(vox map[int][3]float64, n, side int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n*side, n*side))
	parallelFor(len(img.Pix)/4, voxelChunk, func(start, end int) {
		for i := start; i < end; i++ {
			img.Pix[4*i+3] = 255
		}
	})
	for k, v := range vox {
		x, y, z := k/(n*n), k/n%n, k%n
		ox, oy := (x%side)*n, (x/side)*n
		img.SetRGBA(ox+z, oy+y, color.RGBA{R: clamp8(v[0]), G: clamp8(v[1]), B: clamp8(v[2]), A: 255})
	}
	return img
}

func clamp8(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
