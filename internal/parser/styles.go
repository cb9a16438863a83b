package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

type stylesXML struct {
	Styles []styleDefXML `xml:"style"`
}

type styleDefXML struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Default string `xml:"default,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// styleSheet resolves paragraph style ids to display names.
type styleSheet struct {
	names       map[string]string
	defaultName string
	present     bool // false when the package has no word/styles.xml
}

// Built-in styles stored under lowercase names in styles.xml.
var builtinStyleNames = map[string]string{
	"caption": "Caption",
	"footer":  "Footer",
	"header":  "Header",
}

func init() {
	for i := 1; i <= 9; i++ {
		builtinStyleNames[fmt.Sprintf("heading %d", i)] = headingStyle(i)
	}
}

// Name returns the display name for a paragraph style id. An empty or unknown
// id resolves to the default paragraph style, as Word does.
func (s *styleSheet) Name(id string) string {
	if !s.present {
		return fallbackStyleName(id)
	}
	if name, ok := s.names[id]; ok {
		return name
	}
	return s.defaultName
}

// fallbackStyleName derives a name from the id alone: "Heading2" -> "Heading 2".
func fallbackStyleName(id string) string {
	if id == "" {
		return normalStyle
	}
	lower := strings.ToLower(id)
	if rest, ok := strings.CutPrefix(lower, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '9' {
		return headingStyle(int(rest[0] - '0'))
	}
	return id
}

func readStyles(data []byte) (*styleSheet, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/styles.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open styles.xml: %w", err)
		}
		defer rc.Close()

		var sx stylesXML
		if err := xml.NewDecoder(rc).Decode(&sx); err != nil {
			return nil, fmt.Errorf("decode styles.xml: %w", err)
		}
		return newStyleSheet(sx), nil
	}
	return &styleSheet{}, nil
}

func newStyleSheet(sx stylesXML) *styleSheet {
	s := &styleSheet{
		names:       make(map[string]string),
		defaultName: normalStyle,
		present:     true,
	}
	for _, st := range sx.Styles {
		// A style without w:type is a paragraph style.
		if (st.Type != "" && st.Type != "paragraph") || st.StyleID == "" {
			continue
		}
		name := st.Name.Val
		if ui, ok := builtinStyleNames[name]; ok {
			name = ui
		}
		if name == "" {
			name = st.StyleID
		}
		s.names[st.StyleID] = name
		if isOn(st.Default) {
			s.defaultName = name
		}
	}
	return s
}

// isOn reports whether an OOXML boolean attribute is set.
func isOn(v string) bool {
	switch v {
	case "1", "true", "on":
		return true
	}
	return false
}
