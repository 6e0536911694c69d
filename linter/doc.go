// Package linter declares the boundary for cross-language call
// validation and adapter-stub generation without implementing either:
// both are explicitly external-collaborator concerns, treated as
// producers/consumers of this module's extracted Tree format rather
// than something this module does itself. Kept here as interfaces
// only.
package linter
