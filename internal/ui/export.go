package ui

import (
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
)

// Format is an export file type.
type Format int

const (
	FormatPDF Format = iota
	FormatPNG
	FormatSVG
)

// pngScale renders PNGs at twice canvas resolution.
const pngScale = 2

func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatPNG:
		return ".png"
	case FormatSVG:
		return ".svg"
	}
	return ""
}

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatPNG:
		return "PNG"
	case FormatSVG:
		return "SVG"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Write renders s in format f.
func (f Format) Write(w io.Writer, s state.Surface) error {
	switch f {
	case FormatPDF:
		return export.PDF(w, s)
	case FormatPNG:
		return export.PNG(w, s, pngScale)
	case FormatSVG:
		return export.SVG(w, s)
	}
	return fmt.Errorf("unknown export format %d", int(f))
}

// SaveToFile exports the current surface to writer and closes it.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser, f Format) error {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[EXPORT] error closing writer: %v", err)
		}
	}()

	s := b.Surface()
	if err := f.Write(writer, s); err != nil {
		log.Printf("[EXPORT] %s to %s failed: %v", f, writer.URI(), err)
		b.SetStatus(fmt.Sprintf("Error exporting %s", f))
		return err
	}
	b.SetStatus(fmt.Sprintf("Exported %d shapes to %s", len(s.Shapes), writer.URI().Name()))
	return nil
}

// ShowExport asks for a destination and exports the board there.
func ShowExport(b *BoardWidget, win fyne.Window, f Format) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		if err := b.SaveToFile(writer, f); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName("sketch" + f.Extension())
	d.SetFilter(storage.NewExtensionFileFilter([]string{f.Extension()}))
	d.Show()
}
