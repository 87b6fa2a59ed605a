// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: .env
// files populate the process environment, env.Parse fills the struct, and
// each configuration type is cached so it is parsed at most once per process.
package config
