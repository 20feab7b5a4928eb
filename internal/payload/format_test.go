package payload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.4\n"), FormatPDF},
		{"pdf magic only", []byte("%PDF"), FormatPDF},
		{"png", append(append([]byte{}, pngHeader...), 0x00, 0x00, 0x00, 0x0D), FormatPNG},
		{"png signature only", pngHeader, FormatPNG},
		{"zpl", []byte("^XA^FO50,50^A0N,50,50^FDHello^FS^XZ"), FormatZPL},
		{"zpl end marker only", []byte("~SD15^XZ"), FormatZPL},
		{"zpl after binary noise", []byte{0xff, 0xfe, '^', 'X', 'A'}, FormatZPL},
		{"epl", []byte("N\nA50,50,0,3,1,1,N,\"TEST\"\nP1\n"), FormatEPL2},
		{"epl crlf", []byte("\r\nN\r\nP1\r\n"), FormatEPL2},
		{"epl single line", []byte("q812"), FormatEPL2},
		{"epl O command", []byte("  OD\nP1"), FormatEPL2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectUnrecognized(t *testing.T) {
	for _, data := range [][]byte{
		{0x00},
		[]byte("%PD"),
		pngHeader[:7],
		[]byte("hello world"),
		[]byte("n lowercase is not epl"),
		[]byte("Q uppercase q is not epl"),
		[]byte("   \n\t"),
	} {
		_, err := Detect(data)
		assert.ErrorIs(t, err, ErrUnrecognizedFormat, "data %q", data)
	}
}

func TestDetectPriority(t *testing.T) {
	pdfWithZPL := []byte("%PDF-1.4\n^XA^FDnot a label^XZ")
	got, err := Detect(pdfWithZPL)
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, got)

	zplStartingWithN := []byte("N^XA^XZ")
	got, err = Detect(zplStartingWithN)
	require.NoError(t, err)
	assert.Equal(t, FormatZPL, got)
}

func TestDetectorsOrder(t *testing.T) {
	var order []Format
	for _, d := range Detectors {
		order = append(order, d.Format)
	}
	assert.Equal(t, []Format{FormatPDF, FormatPNG, FormatZPL, FormatEPL2}, order)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "pdf", FormatPDF.Extension())
	assert.Equal(t, "png", FormatPNG.Extension())
	assert.Equal(t, "zpl", FormatZPL.Extension())
	assert.Equal(t, "epl", FormatEPL2.Extension())
	assert.Equal(t, "ZPLII", FormatZPL.String())
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.March, 5, 7, 8, 9, 999_000_000, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "20240305-12-08-09.pdf", FileName(FormatPDF, now))

	assert.Equal(t, "19700101-00-00-00.zpl", FileName(FormatZPL, time.Unix(0, 0)))
	assert.Equal(t, "19700101-00-00-00.epl", FileName(FormatEPL2, time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)

	f, name, err := Classify(pngHeader, now)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "20251231-23-59-59.png", name)

	_, _, err = Classify([]byte{0x00}, now)
	assert.ErrorIs(t, err, ErrUnrecognizedFormat)
}
