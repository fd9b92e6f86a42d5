package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

func extractDOCX(_ context.Context, data []byte) (string, error) {
	return openXMLText(data, func(name string) bool {
		return name == "word/document.xml"
	})
}

func extractPPTX(_ context.Context, data []byte) (string, error) {
	return openXMLText(data, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	})
}

// openXMLText concatenates every <t> run of the matching zip parts. Parts are
// visited in name order so slides keep their sequence.
func openXMLText(data []byte, match func(name string) bool) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open xml archive: %w", err)
	}
	files := make([]*zip.File, 0)
	for _, f := range zr.File {
		if match(f.Name) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return slideLess(files[i].Name, files[j].Name)
	})
	var out strings.Builder
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", err
		}
		out.WriteString(textRuns(b))
		out.WriteString("\n")
	}
	return collapseWhitespace(out.String()), nil
}

// slideLess orders slide10.xml after slide9.xml.
func slideLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func textRuns(content []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(content))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			break
		}
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String()
}
