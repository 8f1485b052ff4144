package changewallpaperlib

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the fatal failures of a run.
type ErrorKind int

const (
	NoMonitorsFound ErrorKind = iota + 1
	MonitorIndexOutOfRange
	InvalidImageFormat
	UnsupportedExtension
	CanvasPersistFailure
	WallpaperApplyFailed
)

func (k ErrorKind) String() string {
	switch k {
	case NoMonitorsFound:
		return "NoMonitorsFound"
	case MonitorIndexOutOfRange:
		return "MonitorIndexOutOfRange"
	case InvalidImageFormat:
		return "InvalidImageFormat"
	case UnsupportedExtension:
		return "UnsupportedExtension"
	case CanvasPersistFailure:
		return "CanvasPersistFailure"
	case WallpaperApplyFailed:
		return "WallpaperApplyFailed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error carries a Kind so callers can match with errors.Is against the
// sentinels below regardless of the wrapped cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

var (
	// ErrNoMonitors means the enumerator returned an empty list.
	ErrNoMonitors = &Error{Kind: NoMonitorsFound}

	// ErrMonitorIndexOutOfRange means the target index is not in the monitor list.
	ErrMonitorIndexOutOfRange = &Error{Kind: MonitorIndexOutOfRange}

	// ErrInvalidImageFormat means the input could not be decoded.
	ErrInvalidImageFormat = &Error{Kind: InvalidImageFormat}

	// ErrUnsupportedExtension means the input is not a .png, .jpg or .jpeg file.
	ErrUnsupportedExtension = &Error{Kind: UnsupportedExtension}

	// ErrCanvasPersist means the composed canvas could not be written.
	ErrCanvasPersist = &Error{Kind: CanvasPersistFailure}

	// ErrWallpaperApply means the legacy whole-desktop setter failed.
	ErrWallpaperApply = &Error{Kind: WallpaperApplyFailed}
)

// ErrNativeUnavailable is returned by platforms without a per-monitor API.
// It never ends a run, the selector falls back instead.
var ErrNativeUnavailable = errors.New("per-monitor wallpaper API unavailable")

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the ErrorKind of err, or 0 if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
