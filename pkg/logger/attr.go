package logger

import "log/slog"

// Component tags a record with the subsystem emitting it.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error tags a record with an error message.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// UserID tags a record with the acting user's id.
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// CafeID tags a record with the tenant it concerns.
func CafeID(id string) slog.Attr {
	return slog.String("cafe_id", id)
}
