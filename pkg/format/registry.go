package format

import (
	"strings"
	"sync"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Registry resolves label formats by identifier. Lookups are
// case-insensitive; each logical format has exactly one canonical entry and
// listings preserve registration order.
//
// A Registry is safe for concurrent use. Registration is expected at start-up
// but may happen at any time without affecting existing entries.
type Registry struct {
	mu      sync.RWMutex
	order   []string               // canonical ids in registration order
	formats map[string]LabelFormat // keyed by lower-cased id
}

// NewRegistry creates a registry holding the given formats in order.
func NewRegistry(formats ...LabelFormat) (*Registry, error) {
	r := &Registry{formats: make(map[string]LabelFormat, len(formats))}
	for _, f := range formats {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a new registry populated with the built-in formats.
func Default() *Registry {
	r, err := NewRegistry(Builtin...)
	if err != nil {
		panic("format: invalid built-in format: " + err.Error())
	}
	return r
}

// Register adds a format. It fails if the descriptor is invalid or if a
// format with the same identifier (ignoring case) is already registered.
func (r *Registry) Register(f LabelFormat) error {
	if err := f.Validate(); err != nil {
		return err
	}
	key := normalizeID(f.ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.formats[key]; ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"format %q is already registered as %q", f.ID, existing.ID)
	}
	if f.Name == "" {
		f.Name = f.ID
	}
	r.formats[key] = f
	r.order = append(r.order, f.ID)
	return nil
}

// Lookup returns the format registered under id (case-insensitive).
// An empty id fails with INVALID_CONFIGURATION; an unregistered id fails
// with UNKNOWN_FORMAT listing the valid identifiers.
func (r *Registry) Lookup(id string) (LabelFormat, error) {
	if strings.TrimSpace(id) == "" {
		return LabelFormat{}, errors.New(errors.ErrCodeInvalidConfig, "format identifier cannot be empty")
	}

	r.mu.RLock()
	f, ok := r.formats[normalizeID(id)]
	r.mu.RUnlock()
	if !ok {
		return LabelFormat{}, errors.NewUnknownFormat(id, r.IDs())
	}
	return f, nil
}

// List returns the (id, name) pairs of all formats in registration order.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, len(r.order))
	for i, id := range r.order {
		out[i] = r.formats[normalizeID(id)].Summary()
	}
	return out
}

// Formats returns full descriptors in registration order.
func (r *Registry) Formats() []LabelFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LabelFormat, len(r.order))
	for i, id := range r.order {
		out[i] = r.formats[normalizeID(id)]
	}
	return out
}

// IDs returns the canonical identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
