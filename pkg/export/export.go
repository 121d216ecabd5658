package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Column maps a display header onto a row key.
type Column struct {
	Header string
	Key    string
}

// Document is a rendered report ready to be streamed.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Format identifies an output encoding.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat defaults to PDF for an empty value.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// cellText renders a row value, substituting "" for missing or nil values.
func cellText(row map[string]any, key string) string {
	value, ok := row[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
