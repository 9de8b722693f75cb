package study

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readXLSX returns every row of one worksheet as strings, header first.
// Rows shorter than the header are padded.
func readXLSX(path, sheetName string) ([][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	sheets := parseWorkbook(readZipFile(zr, "xl/workbook.xml"))
	rels := parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels"))
	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))

	target, err := sheetTarget(sheets, rels, sheetName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	data := readZipFile(zr, target)
	if data == nil {
		return nil, fmt.Errorf("%s: worksheet %s not found", filepath.Base(path), target)
	}
	rr := &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
	var rows [][]string
	width := 0
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		if len(rows) == 0 {
			width = len(row)
		}
		if len(row) < width {
			tmp := make([]string, width)
			copy(tmp, row)
			row = tmp
		} else if len(row) > width {
			row = row[:width]
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyTable)
	}
	return rows, nil
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

// sheetTarget resolves the zip entry of the named sheet, or the first sheet
// when name is empty.
func sheetTarget(sheets []wbSheet, rels map[string]string, name string) (string, error) {
	if name == "" {
		if len(sheets) > 0 {
			if rel, ok := rels[sheets[0].RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
		return "xl/worksheets/sheet1.xml", nil
	}
	for _, s := range sheets {
		if strings.EqualFold(s.Name, name) {
			if rel, ok := rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
			return fmt.Sprintf("xl/worksheets/sheet%d.xml", s.SheetID), nil
		}
	}
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	return "", fmt.Errorf("sheet %q not found; available sheets: %s", name, strings.Join(names, ", "))
}

func parseWorkbook(data []byte) []wbSheet {
	var sheets []wbSheet
	walkXML(data, func(se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID, _ = strconv.Atoi(a.Value)
			case "id": // r:id
				s.RID = a.Value
			}
		}
		sheets = append(sheets, s)
	})
	return sheets
}

// parseRelationships maps relationship ids to their targets.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	walkXML(data, func(se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

func walkXML(data []byte, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	inT := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return out
			}
			break
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
	return out
}

type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	cur    []string
}

// Next returns the next <row> with cells placed by their column reference.
func (r *sheetRowReader) Next() ([]string, bool) {
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch {
			case se.Name.Local == "row":
				inRow = true
				r.cur = nil
			case inRow && se.Name.Local == "c":
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				idx := colIndexFromRef(ref)
				if idx < 0 {
					idx = len(r.cur)
				}
				val := r.cellValue(typ)
				if len(r.cur) <= idx {
					tmp := make([]string, idx+1)
					copy(tmp, r.cur)
					r.cur = tmp
				}
				r.cur[idx] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				return r.cur, true
			}
		}
	}
}

// cellValue consumes tokens up to </c> and returns the <v> or inline <t> text,
// resolving shared strings.
func (r *sheetRowReader) cellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, err := r.dec.Token()
					if err != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && ed.Name.Local == se.Name.Local {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write(ch)
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local != "c" {
				continue
			}
			if typ == "s" {
				idx, err := strconv.Atoi(strings.TrimSpace(val))
				if err != nil || idx < 0 || idx >= len(r.shared) {
					return ""
				}
				return r.shared[idx]
			}
			return val
		}
	}
}

// colIndexFromRef turns a cell reference like "C12" into a 0-based column.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

// normalizeRelPath converts relationship targets to zip entry names. Targets
// may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return "xl/" + rel
}
