package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidateEntryPoint checks that a rendered entry-point URL parses.
// PostgreSQL connection strings go through the pgx parser so malformed
// ports or options are caught; other schemes only need a URL shape.
// An empty URL is valid: most templates do not declare one.
func ValidateEntryPoint(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntryPoint, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w: %q has no scheme", ErrInvalidEntryPoint, raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		if _, err := pgconn.ParseConfig(raw); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEntryPoint, err)
		}
	}
	return nil
}
