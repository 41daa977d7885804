package bmfont

import "log/slog"

// Registry is a mapping from face name to installed RuntimeFont.
//
// A Registry starts empty and is mutated only by Install, InstallData and
// Uninstall; there is no implicit teardown. It performs no internal
// locking: install, uninstall and atlas generation for the same registry
// must be serialized by the caller. Callers needing isolation (tests,
// embedded engines) construct their own registries; the package-level
// functions operate on DefaultRegistry.
type Registry struct {
	fonts map[string]*RuntimeFont
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]*RuntimeFont)}
}

// DefaultRegistry is the process-wide registry used by the package-level
// Install, InstallData, Uninstall and Font functions.
var DefaultRegistry = NewRegistry()

// Install builds a RuntimeFont from the descriptor and stores it under the
// descriptor's face name. An existing font under the same name is
// destroyed before the new one becomes queryable.
func (r *Registry) Install(desc *FontDescriptor, surfaces PageSurfaces) (*RuntimeFont, error) {
	f, err := Build(desc, surfaces)
	if err != nil {
		return nil, err
	}
	r.add(f)
	return f, nil
}

// InstallData parses raw atlas description data with the registered
// formats, then installs the result like Install. It fails with
// ErrUnrecognizedFormat when no format claims the input.
func (r *Registry) InstallData(data []byte, surfaces PageSurfaces) (*RuntimeFont, error) {
	desc, err := ParseDescriptor(data)
	if err != nil {
		return nil, err
	}
	return r.Install(desc, surfaces)
}

// Add stores an already-built RuntimeFont, destroying any prior entry
// under the same face name. Used by the atlas generator, which builds the
// font over surfaces it produced itself.
func (r *Registry) Add(f *RuntimeFont) {
	r.add(f)
}

func (r *Registry) add(f *RuntimeFont) {
	if prev, ok := r.fonts[f.FaceName]; ok {
		prev.Destroy()
	}
	r.fonts[f.FaceName] = f
	Logger().Info("font installed",
		slog.String("face", f.FaceName),
		slog.Int("glyphs", f.GlyphCount()),
		slog.Int("pages", f.PageCount()))
}

// Uninstall destroys and removes the font under the given face name.
// It fails with a *NotFoundError when the name is not installed; the
// registry is left unchanged in that case.
func (r *Registry) Uninstall(name string) error {
	f, ok := r.fonts[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	f.Destroy()
	delete(r.fonts, name)
	Logger().Info("font uninstalled", slog.String("face", name))
	return nil
}

// Font returns the installed font for a face name.
func (r *Registry) Font(name string) (*RuntimeFont, bool) {
	f, ok := r.fonts[name]
	return f, ok
}

// Faces returns the installed face names, in unspecified order.
func (r *Registry) Faces() []string {
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	return names
}

// Len returns the number of installed fonts.
func (r *Registry) Len() int {
	return len(r.fonts)
}

// Install installs a descriptor into DefaultRegistry.
func Install(desc *FontDescriptor, surfaces PageSurfaces) (*RuntimeFont, error) {
	return DefaultRegistry.Install(desc, surfaces)
}

// InstallData parses and installs raw atlas data into DefaultRegistry.
func InstallData(data []byte, surfaces PageSurfaces) (*RuntimeFont, error) {
	return DefaultRegistry.InstallData(data, surfaces)
}

// Uninstall removes a font from DefaultRegistry.
func Uninstall(name string) error {
	return DefaultRegistry.Uninstall(name)
}

// Font looks up a font in DefaultRegistry.
func Font(name string) (*RuntimeFont, bool) {
	return DefaultRegistry.Font(name)
}
