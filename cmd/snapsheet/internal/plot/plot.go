// Package plot renders spring easing curves to an image.
package plot

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/snapsheet/pkg/animation"
)

// Curve is one series on the chart.
type Curve struct {
	Label  string
	Spring animation.SpringParams
	Color  color.RGBA
}

// Options sizes the chart.
type Options struct {
	Width, Height int
	// Samples is the number of points evaluated per curve.
	Samples int
	Title   string
}

// DefaultOptions is a 640x400 chart with 200 samples per curve.
var DefaultOptions = Options{Width: 640, Height: 400, Samples: 200}

// Palette colors curves in order.
var Palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

var (
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	axis       = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	grid       = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	ink        = image.NewUniform(color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})
)

const (
	marginLeft   = 48
	marginRight  = 16
	marginTop    = 28
	marginBottom = 32
)

// Sample evaluates the spring ease at n+1 evenly spaced points in [0, 1].
func Sample(p animation.SpringParams, n int) []float64 {
	if n < 1 {
		n = 1
	}
	ease := p.Curve()
	out := make([]float64, n+1)
	for i := range out {
		out[i] = ease(float64(i) / float64(n))
	}
	return out
}

// Range returns the value range the chart must show: [0, 1] widened by any
// overshoot or undershoot.
func Range(series ...[]float64) (lo, hi float64) {
	lo, hi = 0, 1
	for _, s := range series {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// chart maps progress space to pixels.
type chart struct {
	img    *image.RGBA
	plot   image.Rectangle
	lo, hi float64
}

func (c *chart) point(t, v float64) image.Point {
	x := c.plot.Min.X + int(math.Round(t*float64(c.plot.Dx()-1)))
	y := c.plot.Max.Y - 1 - int(math.Round((v-c.lo)/(c.hi-c.lo)*float64(c.plot.Dy()-1)))
	return image.Pt(x, y)
}

func (c *chart) hline(y int, col color.RGBA) {
	for x := c.plot.Min.X; x < c.plot.Max.X; x++ {
		c.img.SetRGBA(x, y, col)
	}
}

// line draws a segment with Bresenham's algorithm.
func (c *chart) line(a, b image.Point, col color.RGBA) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	for {
		if a.In(c.img.Bounds()) {
			c.img.SetRGBA(a.X, a.Y, col)
		}
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func (c *chart) text(x, y int, s string) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  ink,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// Render draws curves over a shared progress axis. Grid lines mark 0, 0.5
// and the settled value 1.
func Render(curves []Curve, opts Options) *image.RGBA {
	if opts.Width <= marginLeft+marginRight {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= marginTop+marginBottom {
		opts.Height = DefaultOptions.Height
	}
	if opts.Samples < 1 {
		opts.Samples = DefaultOptions.Samples
	}

	series := make([][]float64, len(curves))
	for i, cv := range curves {
		series[i] = Sample(cv.Spring, opts.Samples)
	}
	lo, hi := Range(series...)
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	c := &chart{
		img:  img,
		plot: image.Rect(marginLeft, marginTop, opts.Width-marginRight, opts.Height-marginBottom),
		lo:   lo,
		hi:   hi,
	}

	for _, v := range []float64{0, 0.5, 1} {
		y := c.point(0, v).Y
		col := grid
		if v == 0 {
			col = axis
		}
		c.hline(y, col)
		label := strconv.FormatFloat(v, 'g', -1, 64)
		c.text(marginLeft-6-textWidth(label), y+4, label)
	}
	for y := c.plot.Min.Y; y < c.plot.Max.Y; y++ {
		img.SetRGBA(c.plot.Min.X, y, axis)
	}
	c.text(c.plot.Min.X, c.plot.Max.Y+16, "0")
	c.text(c.plot.Max.X-textWidth("t=1"), c.plot.Max.Y+16, "t=1")
	if opts.Title != "" {
		c.text(marginLeft, marginTop-10, opts.Title)
	}

	for i, cv := range curves {
		s := series[i]
		prev := c.point(0, s[0])
		for j := 1; j < len(s); j++ {
			next := c.point(float64(j)/float64(opts.Samples), s[j])
			c.line(prev, next, cv.Color)
			prev = next
		}
		legendY := marginTop + 14 + i*16
		legendX := c.plot.Max.X - 150
		c.line(image.Pt(legendX, legendY-4), image.Pt(legendX+16, legendY-4), cv.Color)
		c.text(legendX+22, legendY, cv.Label)
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
