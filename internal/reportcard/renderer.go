// Package reportcard renders a saved calculation as a shareable PNG:
// an embedded SVG backdrop rasterized once, with the report lines
// drawn on top.
package reportcard

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gbyrne/gaa-ref-timer/pkg/matchdto"
)

//go:embed assets/card/backdrop.svg
var cardFiles embed.FS

const (
	cardWidth  = 480
	cardHeight = 300

	titleSize = 26
	lineSize  = 18

	titleBaseline = 64
	firstLineY    = 128
	lineSpacing   = 40
	textLeft      = 48
)

var (
	titleColor = color.NRGBA{R: 247, G: 243, B: 227, A: 255}
	lineColor  = color.NRGBA{R: 232, G: 242, B: 233, A: 255}
	labelColor = color.NRGBA{R: 183, G: 214, B: 190, A: 255}
)

// Renderer produces the PNG report card for a visible calculation.
type Renderer interface {
	RenderPNG(ctx context.Context, title string, view *matchdto.CalculationView) ([]byte, error)
}

type svgCardRenderer struct{}

func NewSVGCardRenderer() Renderer { return &svgCardRenderer{} }

var (
	backdropOnce sync.Once
	backdropImg  image.Image
	backdropErr  error
)

func backdrop() (image.Image, error) {
	backdropOnce.Do(func() {
		data, err := cardFiles.ReadFile("assets/card/backdrop.svg")
		if err != nil {
			backdropErr = fmt.Errorf("read card backdrop: %w", err)
			return
		}
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			backdropErr = fmt.Errorf("parse card backdrop: %w", err)
			return
		}
		icon.SetTarget(0, 0, float64(cardWidth), float64(cardHeight))
		img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
		scanner := rasterx.NewScannerGV(cardWidth, cardHeight, img, img.Bounds())
		raster := rasterx.NewDasher(cardWidth, cardHeight, scanner)
		icon.Draw(raster, 1.0)
		backdropImg = img
	})
	return backdropImg, backdropErr
}

var (
	faceOnce  sync.Once
	titleFace font.Face
	lineFace  font.Face
	faceErr   error
)

func faces() (font.Face, font.Face, error) {
	faceOnce.Do(func() {
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			faceErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		titleFace, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: titleSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faceErr = fmt.Errorf("title face: %w", err)
			return
		}
		lineFace, err = opentype.NewFace(regular, &opentype.FaceOptions{Size: lineSize, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faceErr = fmt.Errorf("line face: %w", err)
		}
	})
	return titleFace, lineFace, faceErr
}

func (r *svgCardRenderer) RenderPNG(ctx context.Context, title string, view *matchdto.CalculationView) ([]byte, error) {
	if view == nil || !view.Show {
		return nil, fmt.Errorf("no calculation to render")
	}

	bg, err := backdrop()
	if err != nil {
		return nil, err
	}
	tFace, lFace, err := faces()
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	imagedraw.Draw(img, img.Bounds(), bg, image.Point{}, imagedraw.Src)

	titleText := strings.TrimSpace(title)
	if titleText == "" {
		titleText = "GAA Match Report"
	}
	drawCentered(img, tFace, titleText, titleBaseline, titleColor)

	lines := []struct{ label, value string }{
		{"Date", view.Date},
		{"Started", view.StartTime},
		{"Ended", view.EndTime},
		{"Duration", view.Duration},
	}
	y := firstLineY
	for _, line := range lines {
		drawAt(img, lFace, line.label, textLeft, y, labelColor)
		drawAt(img, lFace, line.value, cardWidth/2, y, lineColor)
		y += lineSpacing
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawAt(dst *image.RGBA, face font.Face, text string, x, baseline int, clr color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func drawCentered(dst *image.RGBA, face font.Face, text string, baseline int, clr color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(clr), Face: face}
	width := d.MeasureString(text).Round()
	d.Dot = fixed.P((cardWidth-width)/2, baseline)
	d.DrawString(text)
}
