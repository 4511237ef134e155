package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

// decodeDocument decodes the base64 transport encoding of an uploaded
// document into raw bytes.
func decodeDocument(encoded string) ([]byte, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, domain.ErrNoDocumentBytes
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domain.ErrInvalidBase64
	}
	if len(raw) == 0 {
		return nil, domain.ErrNoDocumentBytes
	}
	return raw, nil
}

// extractText converts raw PDF bytes into best-effort plain text. A document
// with no extractable text layer yields an empty string; corrupt bytes yield
// an ExtractionError. The pdf library panics on some malformed inputs, so the
// call is fenced with a recover.
func extractText(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.ExtractionError(fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.ExtractionError(err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.ExtractionError(err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", domain.ExtractionError(err)
	}

	return buf.String(), nil
}
