package logfields

import "log/slog"

// Canonical log field names shared by the client packages.
const (
	KeyOperation  = "op"
	KeyTodoID     = "todo_id"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyStore      = "store"
	KeyError      = "error"
)

func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func TodoID(id int) slog.Attr         { return slog.Int(KeyTodoID, id) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Store(name string) slog.Attr     { return slog.String(KeyStore, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
