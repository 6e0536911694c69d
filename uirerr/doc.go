// Package uirerr implements the external-facing tagged error taxonomy:
// an Error interface implemented by five typed kinds (UirError,
// FrontendError, BackendError, IoError, Unknown), each carrying the
// structured fields its kind needs rather than a single flat message
// string. Callers branch on Kind() or use errors.As against a
// specific typed kind.
package uirerr
