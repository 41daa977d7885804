package bmfont

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextFormat parses the AngelCode BMFont textual format:
//
//	info face="Arial" size=32 bold=0 italic=0 ...
//	common lineHeight=36 base=29 scaleW=512 scaleH=512 pages=1 ...
//	page id=0 file="arial_0.png"
//	char id=65 x=10 y=10 width=20 height=20 xoffset=0 yoffset=0 xadvance=21 page=0 ...
//	kerning first=65 second=86 amount=-2
//
// Exporters on legacy platforms occasionally emit these files in a
// Windows codepage; input that is not valid UTF-8 is decoded as
// Windows-1252 before parsing.
type TextFormat struct{}

// Detect implements Format. The text format always starts with an "info"
// block carrying a face attribute.
func (*TextFormat) Detect(data []byte) bool {
	s := strings.TrimLeft(peekString(data), " \t\r\n\uFEFF")
	return strings.HasPrefix(s, "info") && strings.Contains(s, "face=")
}

// Parse implements Format.
func (*TextFormat) Parse(data []byte) (*FontDescriptor, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("bmfont: decoding legacy font data: %w", err)
		}
		data = decoded
	}

	desc := &FontDescriptor{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tag, fields := splitFontLine(scanner.Text())
		switch tag {
		case "info":
			desc.FaceName = fields["face"]
			if v, err := fieldFloat(fields, "size", lineNo); err == nil {
				desc.FaceSize = v
			}
		case "common":
			v, err := fieldFloat(fields, "lineHeight", lineNo)
			if err != nil {
				return nil, err
			}
			desc.LineHeight = v
		case "page":
			id, err := fieldInt(fields, "id", lineNo)
			if err != nil {
				return nil, err
			}
			desc.Pages = append(desc.Pages, Page{ID: id, SourceRef: fields["file"]})
		case "char":
			g, err := parseCharFields(fields, lineNo)
			if err != nil {
				return nil, err
			}
			desc.Glyphs = append(desc.Glyphs, g)
		case "kerning":
			first, err := fieldFloat(fields, "first", lineNo)
			if err != nil {
				return nil, err
			}
			second, err := fieldFloat(fields, "second", lineNo)
			if err != nil {
				return nil, err
			}
			amount, err := fieldFloat(fields, "amount", lineNo)
			if err != nil {
				return nil, err
			}
			desc.Kernings = append(desc.Kernings, KerningPair{First: first, Second: second, Amount: amount})
		default:
			// "chars count=..." and "kernings count=..." carry no data;
			// unknown blocks are skipped for forward compatibility.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bmfont: reading font data: %w", err)
	}
	return desc, nil
}

func parseCharFields(fields map[string]string, lineNo int) (GlyphInfo, error) {
	var g GlyphInfo
	id, err := fieldInt(fields, "id", lineNo)
	if err != nil {
		return g, err
	}
	g.ID = id
	numeric := []struct {
		key string
		dst *float64
	}{
		{"x", &g.X},
		{"y", &g.Y},
		{"width", &g.Width},
		{"height", &g.Height},
		{"xoffset", &g.XOffset},
		{"yoffset", &g.YOffset},
		{"xadvance", &g.XAdvance},
	}
	for _, n := range numeric {
		if _, ok := fields[n.key]; !ok {
			continue
		}
		v, err := fieldFloat(fields, n.key, lineNo)
		if err != nil {
			return g, err
		}
		*n.dst = v
	}
	if _, ok := fields["page"]; ok {
		p, err := fieldInt(fields, "page", lineNo)
		if err != nil {
			return g, err
		}
		g.PageID = p
	}
	return g, nil
}

// splitFontLine splits "tag key=value key="quoted value"" into the tag and
// a field map. Quoted values may contain spaces and '=' characters.
func splitFontLine(line string) (string, map[string]string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	tagEnd := strings.IndexAny(line, " \t")
	if tagEnd < 0 {
		return line, nil
	}
	tag := line[:tagEnd]
	fields := make(map[string]string)

	rest := line[tagEnd:]
	for len(rest) > 0 {
		rest = strings.TrimLeft(rest, " \t")
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			break
		}
		key := rest[:eq]
		rest = rest[eq+1:]
		var value string
		if strings.HasPrefix(rest, "\"") {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				value = rest[1:]
				rest = ""
			} else {
				value = rest[1 : end+1]
				rest = rest[end+2:]
			}
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				value = rest
				rest = ""
			} else {
				value = rest[:end]
				rest = rest[end:]
			}
		}
		fields[key] = value
	}
	return tag, fields
}

func fieldFloat(fields map[string]string, key string, lineNo int) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("bmfont: line %d: missing %s attribute", lineNo, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bmfont: line %d: invalid %s value %q", lineNo, key, raw)
	}
	return v, nil
}

func fieldInt(fields map[string]string, key string, lineNo int) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("bmfont: line %d: missing %s attribute", lineNo, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bmfont: line %d: invalid %s value %q", lineNo, key, raw)
	}
	return v, nil
}

// peekString returns a bounded string view of the input head for cheap
// detection without converting the whole buffer.
func peekString(data []byte) string {
	const peek = 256
	if len(data) > peek {
		data = data[:peek]
	}
	return string(data)
}
