// Package builtins loads Gobol's builtin-module registry (the member
// surface of __builtins__ and every importable module such as io) from an
// embedded YAML manifest, the same way a dependency lockfile gets decoded
// with gopkg.in/yaml.v3 elsewhere, and pairs each
// declared function with the Go closure that actually executes it for the
// bytecode VM and the tree-walking interpreter alike.
package builtins

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

//go:embed modules.yaml
var defaultManifest []byte

// Function describes one builtin's call signature as declared in the
// manifest.
type Function struct {
	Name       string   `yaml:"name"`
	Params     []string `yaml:"params"`
	Variadic   bool     `yaml:"variadic"`
	ReturnType string   `yaml:"returnType"`
}

// Module groups the functions one importable name exposes.
type Module struct {
	Functions []Function `yaml:"functions"`
}

// manifest is the raw decoded shape of modules.yaml.
type manifest struct {
	Modules map[string]Module `yaml:"modules"`
}

// Registry is the decoded, queryable form of the manifest plus the native
// Go implementation wired to each declared function.
type Registry struct {
	modules map[string]Module
	natives map[string]NativeFunc
}

// NativeFunc is a builtin's actual Go implementation. args are already
// evaluated; err carries a runtime diagnostic message when non-nil.
type NativeFunc func(args []runtime.Value) (runtime.Value, error)

// Load decodes a manifest and validates that every declared module exists
// at least structurally; it does not yet wire native implementations.
func Load(data []byte) (*Registry, error) {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("builtins: decoding manifest: %w", err)
	}
	return &Registry{modules: m.Modules, natives: make(map[string]NativeFunc)}, nil
}

// LoadDefault decodes the manifest embedded into the binary and wires it to
// the native implementations in natives.go.
func LoadDefault() *Registry {
	r, err := Load(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("builtins: embedded manifest is invalid: %v", err))
	}
	registerNatives(r)
	return r
}

// Modules returns the set of importable module names (excluding
// __builtins__, which is never imported explicitly).
func (r *Registry) Modules() []string {
	var names []string
	for name := range r.modules {
		if name == "__builtins__" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Lookup finds a function declaration by module and name. module is
// "__builtins__" for names in scope without an import.
func (r *Registry) Lookup(module, name string) (Function, bool) {
	mod, ok := r.modules[module]
	if !ok {
		return Function{}, false
	}
	for _, fn := range mod.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return Function{}, false
}

// Register wires a native implementation to a "module.name" key. Drivers
// that extend the manifest at runtime with user-definable modules (out of
// scope for the default registry) would call this; the
// default registry wires every manifest entry during LoadDefault.
func (r *Registry) Register(module, name string, fn NativeFunc) {
	r.natives[module+"."+name] = fn
}

// Call invokes the native implementation registered for module.name. It
// returns an error if no implementation was ever wired, which indicates a
// manifest entry with no matching Go function rather than a user mistake.
func (r *Registry) Call(module, name string, args []runtime.Value) (runtime.Value, error) {
	fn, ok := r.natives[module+"."+name]
	if !ok {
		return runtime.NoneValue{}, fmt.Errorf("builtins: %s.%s has no native implementation", module, name)
	}
	return fn(args)
}
