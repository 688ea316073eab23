// Package xmlconfig implements the XML configuration format of §6: an
// <Index Path="..."> element naming the index directory, a <Sources>
// list of <Source Type="..."> enumerator/filter pairs, and a
// <Highlighters> list binding highlighter types to file extensions.
//
// Grounded on the teacher's encoding/xml-free configuration (it reads
// TOML via pelletier/go-toml/v2), so this package instead follows the
// pack's xml-configured tooling: encoding/xml is the natural fit for the
// spec's own element/attribute shape, so no third-party XML library
// substitutes for it here (see DESIGN.md).
package xmlconfig

import (
	"encoding/xml"

	"github.com/standardbeagle/codexdex/internal/errs"
)

// Attrs is a flat string-keyed attribute bag, decoded from any element's
// own attributes (typically <Configuration .../>).
type Attrs map[string]string

func (a *Attrs) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m := make(Attrs, len(start.Attr))
	for _, attr := range start.Attr {
		m[attr.Name.Local] = attr.Value
	}
	*a = m
	return d.Skip()
}

// FilterConfig is one <Filter Type="..."> element. And/Or/Not filters
// nest child <Filter> elements; leaf filters (Wildcard, Regex,
// PassThrough) carry a <Configuration> attribute bag instead.
type FilterConfig struct {
	Type          string       `xml:"Type,attr"`
	Configuration Attrs        `xml:"Configuration"`
	Filters       []FilterConfig `xml:"Filter"`
}

// SourceConfig is one <Source Type="..."> element: an enumerator plus
// its optional filter.
type SourceConfig struct {
	Type          string       `xml:"Type,attr"`
	Configuration Attrs        `xml:"Configuration"`
	Filter        *FilterConfig `xml:"Filter"`
}

// HighlighterConfig is one <Highlighter Type="..." FileExtensions="...">
// element, where FileExtensions is a semicolon-separated list.
type HighlighterConfig struct {
	Type           string `xml:"Type,attr"`
	FileExtensions string `xml:"FileExtensions,attr"`
	Configuration  Attrs  `xml:"Configuration"`
}

// IndexConfig is the root <Index Path="..."> element.
type IndexConfig struct {
	XMLName      xml.Name            `xml:"Index"`
	Path         string              `xml:"Path,attr"`
	Sources      []SourceConfig      `xml:"Sources>Source"`
	Highlighters []HighlighterConfig `xml:"Highlighters>Highlighter"`
}

// ParseConfig decodes an XML configuration document. A missing Path
// attribute is reported by returning a nil config with a nil error
// (§6 "missing Path => null"), since it signals "configuration absent"
// rather than a malformed document.
func ParseConfig(data []byte) (*IndexConfig, error) {
	var cfg IndexConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.NewConfigError("parse index configuration", err)
	}
	if cfg.Path == "" {
		return nil, nil
	}
	return &cfg, nil
}
