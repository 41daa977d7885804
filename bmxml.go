package bmfont

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XMLFormat parses the AngelCode BMFont XML format:
//
//	<font>
//	  <info face="Arial" size="32" .../>
//	  <common lineHeight="36" .../>
//	  <pages><page id="0" file="arial_0.png"/></pages>
//	  <chars count="95"><char id="65" x="10" .../></chars>
//	  <kernings count="1"><kerning first="65" second="86" amount="-2"/></kernings>
//	</font>
type XMLFormat struct{}

// xmlFont mirrors the BMFont XML document structure.
type xmlFont struct {
	XMLName xml.Name `xml:"font"`
	Info    struct {
		Face string  `xml:"face,attr"`
		Size float64 `xml:"size,attr"`
	} `xml:"info"`
	Common struct {
		LineHeight float64 `xml:"lineHeight,attr"`
	} `xml:"common"`
	Pages []struct {
		ID   int    `xml:"id,attr"`
		File string `xml:"file,attr"`
	} `xml:"pages>page"`
	Chars []struct {
		ID       int     `xml:"id,attr"`
		X        float64 `xml:"x,attr"`
		Y        float64 `xml:"y,attr"`
		Width    float64 `xml:"width,attr"`
		Height   float64 `xml:"height,attr"`
		XOffset  float64 `xml:"xoffset,attr"`
		YOffset  float64 `xml:"yoffset,attr"`
		XAdvance float64 `xml:"xadvance,attr"`
		Page     int     `xml:"page,attr"`
	} `xml:"chars>char"`
	Kernings []struct {
		First  float64 `xml:"first,attr"`
		Second float64 `xml:"second,attr"`
		Amount float64 `xml:"amount,attr"`
	} `xml:"kernings>kerning"`
}

// Detect implements Format. XML atlas descriptions open with a <font>
// element, possibly preceded by an XML declaration.
func (*XMLFormat) Detect(data []byte) bool {
	s := strings.TrimLeft(peekString(data), " \t\r\n\uFEFF")
	if !strings.HasPrefix(s, "<") {
		return false
	}
	return strings.Contains(s, "<font")
}

// Parse implements Format.
func (*XMLFormat) Parse(data []byte) (*FontDescriptor, error) {
	var doc xmlFont
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bmfont: parsing XML font data: %w", err)
	}

	desc := &FontDescriptor{
		FaceName:   doc.Info.Face,
		FaceSize:   doc.Info.Size,
		LineHeight: doc.Common.LineHeight,
	}
	for _, p := range doc.Pages {
		desc.Pages = append(desc.Pages, Page{ID: p.ID, SourceRef: p.File})
	}
	for _, c := range doc.Chars {
		desc.Glyphs = append(desc.Glyphs, GlyphInfo{
			ID:       c.ID,
			PageID:   c.Page,
			X:        c.X,
			Y:        c.Y,
			Width:    c.Width,
			Height:   c.Height,
			XOffset:  c.XOffset,
			YOffset:  c.YOffset,
			XAdvance: c.XAdvance,
		})
	}
	for _, k := range doc.Kernings {
		desc.Kernings = append(desc.Kernings, KerningPair{First: k.First, Second: k.Second, Amount: k.Amount})
	}
	return desc, nil
}
