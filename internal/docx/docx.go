// Package docx extracts tables from Word (.docx) documents.
//
// A .docx file is a zip archive whose main part, word/document.xml, holds
// WordprocessingML. Tables are w:tbl elements of w:tr rows and w:tc cells;
// visible cell text lives in w:t runs. Only that subset is read here.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mqzhang/stabwatch/internal/model"
)

const documentPart = "word/document.xml"

// ExtractTables returns every top-level table in the document, in document
// order. The first row of each table is treated as its header by callers.
// Any structural problem (not a zip, missing or malformed document part)
// is returned as an error for the file as a whole.
func ExtractTables(path string) ([]model.Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name == documentPart {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document part: %w", err)
			}
			defer func() { _ = rc.Close() }()
			return parseDocument(rc)
		}
	}
	return nil, fmt.Errorf("%s: no %s part, not a Word document", path, documentPart)
}

// parseDocument walks the XML token stream and collects top-level tables.
func parseDocument(r io.Reader) ([]model.Table, error) {
	dec := xml.NewDecoder(r)
	var tables []model.Table

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return tables, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse document part: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "tbl" {
			t, err := parseTable(dec)
			if err != nil {
				return nil, err
			}
			tables = append(tables, t)
		}
	}
}

// parseTable consumes tokens until the table's closing element.
func parseTable(dec *xml.Decoder) (model.Table, error) {
	var t model.Table
	for {
		tok, err := dec.Token()
		if err != nil {
			return t, fmt.Errorf("parse table: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "tr" {
				cells, err := parseRow(dec)
				if err != nil {
					return t, err
				}
				if t.Header == nil {
					t.Header = cells
				} else {
					t.Rows = append(t.Rows, cells)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "tbl" {
				return t, nil
			}
		}
	}
}

// parseRow collects the cell texts of one w:tr.
func parseRow(dec *xml.Decoder) ([]string, error) {
	var cells []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table row: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "tc" {
				text, err := parseCell(dec)
				if err != nil {
					return nil, err
				}
				cells = append(cells, text)
			}
		case xml.EndElement:
			if el.Name.Local == "tr" {
				return cells, nil
			}
		}
	}
}

// parseCell gathers the visible text of one w:tc. Paragraph boundaries
// become newlines and the result is trimmed, matching how word processors
// render cell content. Nested tables are skipped, not flattened.
func parseCell(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("parse table cell: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				text, err := readText(dec)
				if err != nil {
					return "", err
				}
				sb.WriteString(text)
			case "tbl":
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("skip nested table: %w", err)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				sb.WriteString("\n")
			case "tc":
				return strings.TrimSpace(sb.String()), nil
			}
		}
	}
}

// readText consumes the character data of one w:t element.
func readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("read text run: %w", err)
		}
		switch el := tok.(type) {
		case xml.CharData:
			sb.Write(el)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
