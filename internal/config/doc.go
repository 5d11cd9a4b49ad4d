// Package config loads and validates the financas-api settings from
// environment variables (FINANCAS_ prefix), an optional config.yaml and an
// optional .env file. Environment variables always win.
package config
