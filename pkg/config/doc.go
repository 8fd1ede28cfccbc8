// Package config loads typed configuration from environment variables.
//
// Each package that needs settings declares its own struct with
// github.com/caarlos0/env tags; config.Load parses and caches it. A .env file
// in the working directory is loaded once through github.com/joho/godotenv.
package config
