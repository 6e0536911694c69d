package uirerr

import "fmt"

// Kind identifies which of the five error variants an Error carries.
type Kind string

const (
	KindUir      Kind = "uir_error"
	KindFrontend Kind = "frontend_error"
	KindBackend  Kind = "backend_error"
	KindIO       Kind = "io_error"
	KindUnknown  Kind = "unknown"
)

// Error is the taxonomy every uirerr value satisfies: it behaves as a
// normal Go error, plus exposes which Kind it is so a caller can
// branch without a type switch.
type Error interface {
	error
	Kind() Kind
}

// UirError reports a defect in the IR itself: a detected invariant
// violation such as a cycle or a type mismatch during analysis.
type UirError struct {
	ErrKind string // e.g. "CycleDetected", "TypeMismatch"
	Details string
}

func (e *UirError) Kind() Kind { return KindUir }
func (e *UirError) Error() string {
	return fmt.Sprintf("UIR Error [%s]: %s", e.ErrKind, e.Details)
}

// NewUirError reports a general UIR error with no specific sub-kind.
func NewUirError(details string) *UirError {
	return &UirError{ErrKind: "General", Details: details}
}

// FrontendError reports a failure while lowering source into UIR:
// parsing, type checking, or any other front-end stage.
type FrontendError struct {
	Stage   string // e.g. "Parsing", "TypeChecking"
	File    string // empty if unknown
	Line    int    // 0 if unknown
	Message string
}

func (e *FrontendError) Kind() Kind { return KindFrontend }
func (e *FrontendError) Error() string {
	loc := "unknown location"
	switch {
	case e.File != "" && e.Line != 0:
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	case e.File != "":
		loc = e.File
	}
	return fmt.Sprintf("Frontend Error [%s at %s]: %s", e.Stage, loc, e.Message)
}

// NewFrontendError reports a general frontend error with no location.
func NewFrontendError(message string) *FrontendError {
	return &FrontendError{Stage: "General", Message: message}
}

// BackendError reports a failure while lowering UIR to a concrete
// target: instruction selection, scheduling, or register allocation.
type BackendError struct {
	Target  string // e.g. "x86_64", "CUDA"
	Stage   string // e.g. "Selection", "Scheduling"
	Message string
}

func (e *BackendError) Kind() Kind { return KindBackend }
func (e *BackendError) Error() string {
	return fmt.Sprintf("Backend Error [%s - %s]: %s", e.Target, e.Stage, e.Message)
}

// NewBackendError reports a general backend error with no known target.
func NewBackendError(message string) *BackendError {
	return &BackendError{Target: "Unknown", Stage: "General", Message: message}
}

// IoError reports a failure reading or writing auxiliary input, such
// as a source file or a side-channel configuration.
type IoError struct {
	Path      string // empty if unknown
	Operation string
	Message   string
}

func (e *IoError) Kind() Kind { return KindIO }
func (e *IoError) Error() string {
	path := e.Path
	if path == "" {
		path = "unknown path"
	}
	return fmt.Sprintf("IO Error [%s on %s]: %s", e.Operation, path, e.Message)
}

// NewIoError reports a general IO error with no known path.
func NewIoError(message string) *IoError {
	return &IoError{Operation: "Unknown", Message: message}
}

// FromGoError wraps a plain error (e.g. from os.Open) as an IoError.
func FromGoError(err error) *IoError {
	return NewIoError(err.Error())
}

// Unknown covers a failure that doesn't fit any other kind, carrying
// an opaque numeric code alongside the message.
type Unknown struct {
	Code    int
	Message string
}

func (e *Unknown) Kind() Kind { return KindUnknown }
func (e *Unknown) Error() string {
	return fmt.Sprintf("Unknown Error (%d): %s", e.Code, e.Message)
}

// NewUnknown reports an unknown error with the conventional -1 code.
func NewUnknown(message string) *Unknown {
	return &Unknown{Code: -1, Message: message}
}
