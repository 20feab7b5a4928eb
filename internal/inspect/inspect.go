// Package inspect reports informational details about a decoded label.
package inspect

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/example/labeldrop/internal/payload"
)

// Details describes a decoded payload. Zero values mean "not known".
type Details struct {
	Format    string `json:"format"`
	Extension string `json:"extension"`
	FileName  string `json:"file_name"`
	Size      int    `json:"size"`
	Pages     int    `json:"pages,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Labels    int    `json:"labels,omitempty"`
}

// Describe inspects res. Failures to read format internals leave the
// corresponding fields zero.
func Describe(res payload.Result) Details {
	d := Details{
		Format:    res.Format.String(),
		Extension: res.Extension,
		FileName:  res.FileName,
		Size:      res.Size(),
	}

	switch res.Format {
	case payload.FormatPDF:
		d.Pages = pdfPages(res.Data)
	case payload.FormatPNG:
		if cfg, err := png.DecodeConfig(bytes.NewReader(res.Data)); err == nil {
			d.Width, d.Height = cfg.Width, cfg.Height
		}
	case payload.FormatZPL:
		d.Labels = strings.Count(string(res.Data), "^XA")
	case payload.FormatEPL2:
		d.Labels = eplPrintCommands(string(res.Data))
	}
	return d
}

func pdfPages(data []byte) (n int) {
	// pdfcpu can panic on badly truncated xref tables.
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0
	}
	return n
}

func eplPrintCommands(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "P") {
			count++
		}
	}
	return count
}

// Summary renders d as short "key: value" lines for console output.
func (d Details) Summary() []string {
	lines := []string{
		fmt.Sprintf("format: %s (.%s)", d.Format, d.Extension),
		fmt.Sprintf("file name: %s", d.FileName),
		fmt.Sprintf("size: %s", ByteCount(int64(d.Size))),
	}
	if d.Pages > 0 {
		lines = append(lines, fmt.Sprintf("pages: %d", d.Pages))
	}
	if d.Width > 0 {
		lines = append(lines, fmt.Sprintf("dimensions: %dx%d", d.Width, d.Height))
	}
	if d.Labels > 0 {
		lines = append(lines, fmt.Sprintf("labels: %d", d.Labels))
	}
	return lines
}

// ByteCount formats b with decimal units.
func ByteCount(b int64) string {
	const unit = 1000
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "kMGTPE"[exp])
}
