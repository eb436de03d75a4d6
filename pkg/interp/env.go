package interp

import "github.com/zhanghaoxvan/gobol/pkg/runtime"

// env is a vector-of-maps scope chain: index 0 is the global scope (never
// popped), and every block or function call pushes one more map onto the
// end. Lookups and assignments walk from the innermost scope outward,
// mirroring pkg/symbols.Table's shape on the analysis side.
type env struct {
	scopes []map[string]runtime.Value
}

func newEnv() *env {
	return &env{scopes: []map[string]runtime.Value{{}}}
}

func (e *env) push() {
	e.scopes = append(e.scopes, map[string]runtime.Value{})
}

func (e *env) pop() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// define binds name in the innermost scope, shadowing any outer binding.
func (e *env) define(name string, v runtime.Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

func (e *env) get(name string) (runtime.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// set assigns to the nearest scope that already binds name. Callers must
// have validated name is bound during semantic analysis before this runs.
func (e *env) set(name string, v runtime.Value) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return
		}
	}
	e.scopes[0][name] = v
}
