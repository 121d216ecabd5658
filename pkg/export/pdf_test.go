package export

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func testExporter() *PDFExporter {
	return &PDFExporter{
		now:      func() time.Time { return time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC) },
		location: time.UTC,
		compress: false,
	}
}

var childColumns = []Column{{Header: "ID", Key: "id"}, {Header: "Nombre", Key: "name"}, {Header: "Alergias", Key: "allergies"}}

func TestGenerateEmptyRowsProducesHeaderAndFooter(t *testing.T) {
	doc, err := testExporter().Generate("Informe de Ninos", "Listado completo", childColumns, nil, "reporte-ninos")
	require.NoError(t, err)

	assert.Equal(t, "reporte-ninos.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	assert.Len(t, pageObject.FindAll(doc.Data, -1), 1)
	assert.Contains(t, string(doc.Data), "(Nombre)")
	assert.Contains(t, string(doc.Data), "gina 1 de 1")
	assert.Contains(t, string(doc.Data), "Fecha: 14 de mayo de 2024")
	assert.NotContains(t, string(doc.Data), "child-")
}

func TestGenerateReadsKeysGenerically(t *testing.T) {
	rows := []map[string]any{
		{"id": "child-1", "name": "Ana", "allergies": nil},
		{"id": "child-2", "name": "Beto"},
	}

	doc, err := testExporter().Generate("Informe", "Sub", childColumns, rows, "reporte")
	require.NoError(t, err)

	body := string(doc.Data)
	assert.Contains(t, body, "(child-1)")
	assert.Contains(t, body, "(Beto)")
}

func TestGeneratePaginatesWithFooterOnEveryPage(t *testing.T) {
	rows := make([]map[string]any, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, map[string]any{"id": fmt.Sprintf("row-%d", i), "name": "Nombre", "allergies": "Ninguna"})
	}

	doc, err := testExporter().Generate("Informe", "Sub", childColumns, rows, "reporte")
	require.NoError(t, err)

	pages := len(pageObject.FindAll(doc.Data, -1))
	require.Greater(t, pages, 1)
	for i := 1; i <= pages; i++ {
		assert.Contains(t, string(doc.Data), fmt.Sprintf("gina %d de %d", i, pages))
	}
}

func TestGenerateRequiresColumns(t *testing.T) {
	_, err := testExporter().Generate("x", "y", nil, nil, "z")
	assert.Error(t, err)
}

func TestCSVExporterProjectsColumns(t *testing.T) {
	rows := []map[string]any{{"id": "c1", "name": "Lucía, M.", "allergies": "Ninguna", "ignored": "x"}}

	doc, err := NewCSVExporter().Generate(childColumns, rows, "reporte-ninos")
	require.NoError(t, err)

	assert.Equal(t, "reporte-ninos.csv", doc.Filename)
	assert.Equal(t, "ID,Nombre,Alergias\nc1,\"Lucía, M.\",Ninguna\n", string(doc.Data))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
