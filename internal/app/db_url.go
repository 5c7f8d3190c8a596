package app

import (
	"net/url"
	"strings"
)

// dbNameFromURL extracts the database name from a postgres connection
// string for otelsql span attributes, falling back to "unknown" when the
// URL can't be parsed or carries no path component.
func dbNameFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return "unknown"
	}

	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return "unknown"
	}

	return name
}

func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}
