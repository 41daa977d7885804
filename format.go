package bmfont

// Format is an atlas description parser. Implementations claim input via
// Detect and turn it into a normalized FontDescriptor via Parse.
//
// Two formats ship with the package: the AngelCode BMFont text format
// ("bmfont-text") and its XML variant ("bmfont-xml"). Custom formats can
// be added with RegisterFormat.
type Format interface {
	// Detect reports whether this format recognizes the input data.
	// Detect must be cheap; it is called on every registered format
	// until one claims the input.
	Detect(data []byte) bool

	// Parse parses the input into a FontDescriptor.
	Parse(data []byte) (*FontDescriptor, error)
}

// namedFormat pairs a format with its registration name.
type namedFormat struct {
	name   string
	format Format
}

// formatRegistry holds registered formats in registration order, so
// detection is deterministic.
var formatRegistry []namedFormat

// RegisterFormat registers a format under a name. Registering an existing
// name replaces the previous format in place, keeping its detection
// priority.
func RegisterFormat(name string, f Format) {
	for i := range formatRegistry {
		if formatRegistry[i].name == name {
			formatRegistry[i].format = f
			return
		}
	}
	formatRegistry = append(formatRegistry, namedFormat{name: name, format: f})
}

// ParseDescriptor runs format detection over the registered formats and
// parses the input with the first format that claims it. It fails with
// ErrUnrecognizedFormat when no format does.
func ParseDescriptor(data []byte) (*FontDescriptor, error) {
	for _, nf := range formatRegistry {
		if nf.format.Detect(data) {
			return nf.format.Parse(data)
		}
	}
	return nil, ErrUnrecognizedFormat
}

func init() {
	RegisterFormat("bmfont-text", &TextFormat{})
	RegisterFormat("bmfont-xml", &XMLFormat{})
}
