package logger

import "log/slog"

// Component tags a log record with the emitting component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error attaches an error message to a log record.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// UserID attaches the owning user identifier to a log record.
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}
