package payload

import (
	"bytes"
	"strings"
)

// Format is the label format resolved for a decoded payload.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatZPL  Format = "zpl"
	FormatEPL2 Format = "epl"
)

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string { return string(f) }

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatPNG:
		return "PNG"
	case FormatZPL:
		return "ZPLII"
	case FormatEPL2:
		return "EPL2"
	}
	return "unknown"
}

var (
	pdfMagic = []byte("%PDF")
	pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// Detector pairs a predicate over the raw bytes and their lossy text view with
// the format it identifies.
type Detector struct {
	Format Format
	Match  func(data []byte, text string) bool
}

// Detectors is evaluated in order; the first match wins.
var Detectors = []Detector{
	{Format: FormatPDF, Match: isPDF},
	{Format: FormatPNG, Match: isPNG},
	{Format: FormatZPL, Match: isZPL},
	{Format: FormatEPL2, Match: isEPL2},
}

// Detect returns the first format in Detectors matching data.
func Detect(data []byte) (Format, error) {
	text := lossyText(data)
	for _, d := range Detectors {
		if d.Match(data, text) {
			return d.Format, nil
		}
	}
	return "", ErrUnrecognizedFormat
}

func lossyText(data []byte) string {
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

func isPDF(data []byte, _ string) bool {
	return len(data) >= len(pdfMagic) && bytes.Equal(data[:len(pdfMagic)], pdfMagic)
}

func isPNG(data []byte, _ string) bool {
	return len(data) >= len(pngMagic) && bytes.Equal(data[:len(pngMagic)], pngMagic)
}

func isZPL(_ []byte, text string) bool {
	return strings.Contains(text, "^XA") || strings.Contains(text, "^XZ") || strings.HasPrefix(text, "^XA")
}

func isEPL2(_ []byte, text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "N") && !strings.HasPrefix(trimmed, "O") && !strings.HasPrefix(trimmed, "q") {
		return false
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		first, _, _ := strings.Cut(trimmed, "\n")
		first = strings.TrimSuffix(first, "\r")
		return first != "" && isASCIILetter(first[0])
	}
	return trimmed != "" && isASCIILetter(trimmed[0])
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
