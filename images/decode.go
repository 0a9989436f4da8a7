package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"htmlview/common"
)

const (
	// size used when SVG has no usable viewBox
	defaultSVGSize = 1024
	// maximum rasterized dimension, viewBox values are not trusted
	maxRasterDim = 8192
)

// placeholderColor is "secondary" label gray.
var placeholderColor = color.NRGBA{R: 0x8e, G: 0x8e, B: 0x93, A: 0xff}

// decode turns raw bytes into image sized according to hint and resize mode.
func decode(data []byte, hint SizeHint, mode common.ImageResizeMode) (image.Image, string, error) {
	if isSVG(data) {
		img, err := rasterizeSVG(data, hint.Width, hint.Height)
		if err != nil {
			return nil, "", fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return img, "svg", nil
	}

	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, "", fmt.Errorf("%w: content type %q", ErrUnsupported, kind.MIME.Value)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode image: %w", err)
	}
	return resize(img, hint, mode), format, nil
}

// isSVG checks beginning of data for svg root element, filetype does not
// recognize svg.
func isSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	head = bytes.TrimLeft(head, "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}

// resize never enlarges images.
func resize(img image.Image, hint SizeHint, mode common.ImageResizeMode) image.Image {
	w, h := hint.Width, hint.Height
	b := img.Bounds()
	switch mode {
	case common.ImageResizeModeKeepAR:
		switch {
		case w > 0 && h > 0:
			if b.Dx() > w || b.Dy() > h {
				return imaging.Fit(img, w, h, imaging.Lanczos)
			}
		case w > 0:
			if b.Dx() > w {
				return imaging.Resize(img, w, 0, imaging.Lanczos)
			}
		case h > 0:
			if b.Dy() > h {
				return imaging.Resize(img, 0, h, imaging.Lanczos)
			}
		}
	case common.ImageResizeModeStretch:
		if w > 0 && h > 0 && (b.Dx() != w || b.Dy() != h) {
			return imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}
	return img
}

// Placeholder returns box of hint size (1x1 for empty hint) filled with
// secondary color at given opacity.
func Placeholder(hint SizeHint, opacity float64) image.Image {
	w, h := max(hint.Width, 1), max(hint.Height, 1)
	c := placeholderColor
	c.A = uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return imaging.New(w, h, c)
}

// rasterizeSVG draws SVG on white background. When only one target
// dimension is given the other follows aspect ratio, when both are given
// image is fitted into the box.
func rasterizeSVG(data []byte, targetW, targetH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}

	w, h := intrW, intrH
	switch {
	case targetW > 0 && targetH > 0:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	case targetW > 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetH > 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	}
	w, h = max(w, 1), max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
