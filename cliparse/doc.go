// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Meeting store connection string (default: file:proxy-solver.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for meeting admin key HMAC (required)
  - DefaultCapacity: Proxy cap for meetings created without one (0 = unbounded)
  - LogLevel: slog level (default: info)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-c          Default proxy capacity
	--log-level Log level
	--admin-salt Admin key salt
	--env-file  Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	DEFAULT_CAPACITY → -c
	LOG_LEVEL        → --log-level
	ADMIN_KEY_SALT   → --admin-salt

CLI flags take precedence over environment variables. A .env file, when
present, fills in variables the process environment does not already set.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT is missing
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
  - PORT, DEFAULT_CAPACITY, or LOG_LEVEL cannot be parsed
*/
package cliparse
