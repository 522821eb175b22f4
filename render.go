package paged

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"pkt.systems/paged/pdfobj"
)

// RenderRequest contains inputs for one document render.
type RenderRequest struct {
	Reader io.Reader
	Writer io.Writer
	Config Config
}

// Render reads a JSON layout document from req.Reader and writes the
// finished PDF to req.Writer. Output is written only after the whole
// document finalized successfully; a failed render writes nothing.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("paged render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("paged render: writer is nil")
	}
	input, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("paged render: read input: %w", err)
	}
	out, err := RenderBytes(input, req.Config)
	if err != nil {
		return err
	}
	n, err := req.Writer.Write(out)
	if err != nil {
		return fmt.Errorf("paged render: write output: %w", err)
	}
	if n != len(out) {
		return fmt.Errorf("paged render: short write: %d of %d bytes", n, len(out))
	}
	return nil
}

// RenderBytes converts a JSON layout document to PDF bytes.
func RenderBytes(input []byte, override Config) ([]byte, error) {
	cfg := DefaultConfig()
	applyConfig(&cfg, override)
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return nil, fmt.Errorf("paged render: %w: page size %gx%g", ErrInvalidGeometry, cfg.PageWidth, cfg.PageHeight)
	}
	if cfg.FontSize <= 0 {
		return nil, fmt.Errorf("paged render: %w: font size %g", ErrFont, cfg.FontSize)
	}

	doc, err := ParseDocument(input)
	if err != nil {
		return nil, fmt.Errorf("paged render: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("paged render: %w: document has no pages", ErrInvalidLayout)
	}

	w := pdfobj.New()
	w.SetCompression(!cfg.NoCompress)
	fonts := NewFontRegistry(w)
	images := NewImageRegistry(w)
	for i, page := range doc.Pages {
		if err := renderPage(w, fonts, images, page, cfg); err != nil {
			return nil, fmt.Errorf("paged render: page %d: %w", i+1, err)
		}
	}

	out, err := w.Finish()
	if err != nil {
		return nil, fmt.Errorf("paged render: %w: %w", ErrDocumentGeneration, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("paged render: %w: empty output", ErrDocumentGeneration)
	}
	return out, nil
}

// RenderFile converts the layout document at inputPath to a PDF at
// outputPath. A failed render leaves no partial output file behind; success
// is reported only after the written file verifies non-empty.
func RenderFile(inputPath, outputPath string) error {
	return RenderFileConfig(inputPath, outputPath, Config{})
}

// RenderFileConfig is RenderFile with configuration overrides.
func RenderFileConfig(inputPath, outputPath string, cfg Config) error {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("paged render: read %s: %w", inputPath, err)
	}
	out, err := RenderBytes(input, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("paged render: write %s: %w", outputPath, err)
	}
	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(outputPath)
		return fmt.Errorf("paged render: %w: output %s did not verify", ErrDocumentGeneration, outputPath)
	}
	return nil
}

func renderPage(w DocWriter, fonts *FontRegistry, images *ImageRegistry, page Page, cfg Config) error {
	c := NewCanvas()
	for i, item := range page.Items {
		if err := renderItem(c, fonts, images, item, cfg); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	if c.Depth() != 0 {
		return fmt.Errorf("%w: unbalanced graphics state (depth %d)", ErrDocumentGeneration, c.Depth())
	}
	contentRef := w.Alloc()
	w.WriteStream(contentRef, c.Content())
	width, height := page.Width, page.Height
	if width <= 0 {
		width = cfg.PageWidth
	}
	if height <= 0 {
		height = cfg.PageHeight
	}
	w.AddPage(width, height, contentRef, c.Resources())
	return nil
}

func renderItem(c *Canvas, fonts *FontRegistry, images *ImageRegistry, item Item, cfg Config) error {
	switch item.Kind {
	case ItemText:
		return renderRun(c, fonts, item, 0, cfg)
	case ItemLine:
		return renderLine(c, fonts, item, cfg)
	case ItemImage:
		return renderImage(c, images, item)
	case ItemMarker:
		RenderMarker(c, fonts, item.Data, item.X, item.Y, cfg.markerDefaults())
		return nil
	default:
		return fmt.Errorf("%w: unhandled item kind %d", ErrInvalidLayout, item.Kind)
	}
}

func renderRun(c *Canvas, fonts *FontRegistry, item Item, dx float64, cfg Config) error {
	data := item.Data
	text := firstString(data, textKeys...)
	if text == "" {
		return nil
	}
	size := firstNumberOr(data, cfg.FontSize, sizeKeys...)
	if size <= 0 {
		return fmt.Errorf("%w: run size %g", ErrInvalidValue, size)
	}
	color := cfg.TextColor
	if v, ok := firstValue(data, colorKeys...); ok {
		parsed, err := ParseColor(v)
		if err != nil {
			return err
		}
		color = parsed
	}
	font := fonts.Resolve(firstStringOr(data, cfg.FontFamily, fontKeys...))
	RenderText(c, item.X+dx, item.Y, text, font, size, color, DeriveFormatting(data))
	return nil
}

func renderLine(c *Canvas, fonts *FontRegistry, item Item, cfg Config) error {
	shifts := map[int]float64{}
	if firstBoolOr(item.Data, false, justifyKeys...) {
		available, _ := firstNumber(item.Data, availableWidthKeys...)
		content, _ := firstNumber(item.Data, contentWidthKeys...)
		payloads := make([]Node, len(item.Items))
		for i, child := range item.Items {
			payloads[i] = child.Data
		}
		if spacing := ComputeWordSpacing(payloads, available, content); spacing != 0 {
			for _, adj := range ApplyWordSpacing(payloads, spacing) {
				shifts[adj.Index] = adj.Extra
			}
		}
	}
	for i, child := range item.Items {
		var err error
		switch child.Kind {
		case ItemText:
			err = renderRun(c, fonts, child, shifts[i], cfg)
		case ItemMarker:
			RenderMarker(c, fonts, child.Data, child.X+shifts[i], child.Y, cfg.markerDefaults())
		default:
			err = fmt.Errorf("%w: line cannot contain item kind %d", ErrInvalidLayout, child.Kind)
		}
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
	}
	return nil
}

func renderImage(c *Canvas, images *ImageRegistry, item Item) error {
	raw, err := imagePayload(item.Data)
	if err != nil {
		return err
	}
	pm, err := DecodePixels(raw)
	if err != nil {
		return err
	}
	info, err := images.Embed(pm)
	if err != nil {
		return err
	}
	width, height := item.Width, item.Height
	if width <= 0 {
		width = float64(info.Width)
	}
	if height <= 0 {
		height = float64(info.Height)
	}
	c.DrawImage(info.Name, info.Ref, Rect{X: item.X, Y: item.Y, W: width, H: height})
	return nil
}

// imagePayload extracts the raw encoded image bytes from an image item:
// inline base64 first, then a file path.
func imagePayload(data Node) ([]byte, error) {
	if encoded := firstString(data, imageBytesKeys...); encoded != "" {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: inline bytes: %v", ErrImage, err)
		}
		return raw, nil
	}
	if path := firstString(data, imageSourceKeys...); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImage, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: image item has neither inline bytes nor a source path", ErrImage)
}
