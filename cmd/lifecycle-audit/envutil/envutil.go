package envutil

import (
	"log/slog"
	"os"
	"strconv"
)

// Bool returns the boolean value of the environment variable, or def if it is unset.
func Bool(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring an invalid boolean", "name", name, "value", v)
		return def
	}
	return b
}

// String returns the value of the environment variable, or def if it is unset or empty.
func String(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
