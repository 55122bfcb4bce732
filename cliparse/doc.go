// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands that own their flag set call Bind and Resolve directly:

	var flags cliparse.Config
	cliparse.Bind(cmd.PersistentFlags(), &flags)
	// after parsing
	cfg, err := cliparse.Resolve(flags)

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL or SQLite connection string (required)
  - DatabaseType: postgres or sqlite (detected from the URL when unset)
  - AuthSecret: Session signing secret (required)
  - SiteURL: Public base URL for share links (default: http://localhost:<port>)
  - SessionTTL: Session lifetime (default: 168h)
  - AllowedOrigins: CORS origins (default: SiteURL)

# Environment Variables

Flags fall back to environment variables, and a .env file in the working
directory is loaded first when present:

	PORT            → -p, --port
	DATABASE_URL    → -d, --database-url
	DATABASE_TYPE   → -t, --database-type
	AUTH_SECRET     → --auth-secret
	SITE_URL        → --site-url
	SESSION_TTL     → --session-ttl
	ALLOWED_ORIGINS → --allowed-origins (comma separated)

CLI flags take precedence over environment variables, which take precedence
over .env.

# Validation

Resolve returns an error if required values are missing. The process must
not start without them:

  - DATABASE_URL must be provided
  - AUTH_SECRET must be provided
*/
package cliparse
