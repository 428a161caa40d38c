package format

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

var errNoQuestions = errors.New("no questions to export")

// ErrUnknownFormat returned by Lookup also matches apperrors.ErrNotFound.
var ErrUnknownFormat = errors.New("unknownformat")

// Имена форматов: буквы, цифры, '_' и '-'
var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Info describes a registered format for the format selector.
type Info struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MimeType  string `json:"mime_type"`
}

// Registry maps format names to encoder factories. It is filled at startup
// and only read afterwards.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry создает пустой реестр форматов
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in encoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("json", NewJSONEncoder)
	r.MustRegister("csv", NewCSVEncoder)
	r.MustRegister("xlsx", NewXLSXEncoder)
	return r
}

// Register adds a format. Names must be unique.
func (r *Registry) Register(name string, f Factory) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid format name %q: %w", name, apperrors.ErrValidation)
	}
	if f == nil {
		return fmt.Errorf("nil factory for format %q: %w", name, apperrors.ErrValidation)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("format %q already registered: %w", name, apperrors.ErrValidation)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup creates an encoder for the format. Unknown names fail with
// apperrors.ErrNotFound.
func (r *Registry) Lookup(name string) (Encoder, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownFormat, name, apperrors.ErrNotFound)
	}
	return f(), nil
}

// Has reports whether the format is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns Info for every registered format, sorted by name.
func (r *Registry) Describe() []Info {
	names := r.Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		enc := r.factories[name]()
		infos = append(infos, Info{Name: name, Extension: enc.FileExtension(), MimeType: enc.MimeType()})
	}
	return infos
}

// Only returns a registry restricted to the given formats. An empty list
// keeps every format.
func (r *Registry) Only(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	out := NewRegistry()
	for _, name := range names {
		f, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("%w %q: %w", ErrUnknownFormat, name, apperrors.ErrNotFound)
		}
		if err := out.Register(name, f); err != nil {
			return nil, err
		}
	}
	return out, nil
}
