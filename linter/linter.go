package linter

import "github.com/uir-sat/uirsat/analysis"

// ExternalFuncMetadata describes one function another language exposes
// to CrossLangCall nodes: the constraints it requires of its caller,
// and the constraints it promises to provide in return.
type ExternalFuncMetadata struct {
	Lang                string
	Name                string
	RequiredConstraints analysis.ConstraintSet
	ProvidedConstraints analysis.ConstraintSet
}

// Registry looks up a registered external function's metadata by
// language and name. How functions get registered (a map, a config
// file, a service call) is a choice left to whoever implements this.
type Registry interface {
	Get(lang, name string) (ExternalFuncMetadata, bool)
}

// Linter validates every CrossLangCall recorded against a Registry,
// returning one diagnostic per violation (an unknown function, or a
// constraint mismatch between the call site and the callee's
// requirements). Walking the extracted tree and formatting diagnostics
// is left to the implementer; this module only extracts the tree the
// implementer would walk.
type Linter interface {
	Lint(registry Registry) []string
}

// GlueProvider emits a target-language adapter stub for one external
// function name.
type GlueProvider interface {
	Lang() string
	GenerateAdapter(funcName string) string
}

// GlueGenerator dispatches adapter generation to whichever GlueProvider
// is registered for a call's language.
type GlueGenerator interface {
	RegisterProvider(p GlueProvider)
	GenerateAdapter(lang, funcName string) (string, bool)
}
