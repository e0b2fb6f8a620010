package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfStrategy is one way of pulling text out of a PDF. Strategies are tried
// in order; the first one that yields non-empty text wins.
type pdfStrategy struct {
	name string
	run  func(path string) (string, error)
}

var pdfStrategies = []pdfStrategy{
	{name: "layout", run: extractPDFLayout},
	{name: "raw", run: extractPDFRaw},
}

// extractPDFText tries each extraction strategy in order. When every strategy
// fails it returns empty text together with the last error so the caller can
// log the degradation; the file is still processed downstream.
func extractPDFText(path string) (string, error) {
	var lastErr error
	for _, s := range pdfStrategies {
		text, err := s.run(path)
		if err != nil {
			lastErr = fmt.Errorf("%s strategy: %w", s.name, err)
			continue
		}
		if text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("%s strategy: no text content", s.name)
	}
	return "", lastErr
}

// extractPDFLayout parses each page's content stream with text-positioning
// operators respected, which keeps multi-column and table layouts readable.
func extractPDFLayout(path string) (string, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return "", err
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		data, err := pageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		if pageText := parseContentStream(data, true); pageText != "" {
			pages = append(pages, pageText)
		}
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// extractPDFRaw ignores positioning operators and collects every string
// literal from every content stream in document order, joined with spaces.
// Cruder than the layout pass but yields text from streams whose operator
// structure the layout pass cannot follow.
func extractPDFRaw(path string) (string, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		data, err := pageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		if pageText := parseContentStream(data, false); pageText != "" {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(pageText)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// readPDF opens and parses a PDF with relaxed validation so structurally
// sloppy but readable invoices still make it through.
func readPDF(path string) (*model.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

func pageContent(ctx *model.Context, pageNr int) ([]byte, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty content stream")
	}
	return data, nil
}

// pdfLiteralRe matches PDF string literals in parentheses: (text here)
var pdfLiteralRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// parseContentStream walks a content stream line by line pulling text out of
// the show-text operators. With layout set, positioning operators (Td/TD/T*)
// are translated into spaces and line breaks so tables stay legible; without
// it the literals are simply joined with spaces.
func parseContentStream(data []byte, layout bool) string {
	var sb strings.Builder

	appendLiterals := func(line []byte, sep byte) {
		for _, m := range pdfLiteralRe.FindAllSubmatch(line, -1) {
			text := decodeLiteral(m[1])
			if text == "" {
				continue
			}
			if sb.Len() > 0 && sep != 0 {
				sb.WriteByte(sep)
			}
			sb.WriteString(text)
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if !layout {
			if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) ||
				bytes.HasSuffix(line, []byte("'")) {
				appendLiterals(line, ' ')
			}
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			appendLiterals(line, 0)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			sb.WriteByte('\n')
			appendLiterals(line, 0)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			// Cursor move: keep adjacent cells apart.
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeText(sb.String())
}

// decodeLiteral handles basic PDF escape sequences inside a string literal.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// normalizeText collapses runs of spaces and tabs while preserving line
// breaks, and drops blank lines.
func normalizeText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
