package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// ErrEmpty is returned when there is no payload to read.
var ErrEmpty = errors.New("empty pdf data")

// ExtractPDFText returns the plain text of a PDF payload.
// Library used: github.com/ledongthuc/pdf.
func ExtractPDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	text, err := extractPDF(data)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return text, nil
}

// ExtractTextFromBytes extracts text from an in-memory payload of the given mime type.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string) (string, error) {
	normalized := normalizeMimeType(mimeType, data)
	if normalized != mimePDF {
		return "", fmt.Errorf("unsupported mime type: %s", normalized)
	}
	return ExtractPDFText(ctx, data)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "" || clean == "application/octet-stream" {
		if bytes.HasPrefix(data, []byte("%PDF-")) {
			return mimePDF
		}
	}
	return clean
}
