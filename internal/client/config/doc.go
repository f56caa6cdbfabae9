// Package config loads runtime configuration for the summarizer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables prefixed with YTS_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   backend base URL (GraphQL + REST)
//	-u string   identity provider base URL
//	-m string   identity mode: simulated | remote
//	-s string   storage backend: secure | memory
//	-d string   data directory for the local vault
//	-l int      simulated latency (milliseconds)
//	-t int      request timeout (seconds, 0 disables)
//	-v string   log level
//	-p string   address for the /metrics listener
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "backend_url": "https://example.hasura.app",
//	  "storage": "memory",
//	  "simulated_latency": "250ms"
//	}
package config
