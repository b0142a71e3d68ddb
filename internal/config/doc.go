// Package config loads, normalizes, and validates timetable configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a neighbouring .env file and honours
// environment fallbacks such as TIMETABLE_DATABASE_DSN. The Config type
// centralizes the conventions the ingestion pipeline depends on: sheet
// selection, the cohort epoch, the period column layout and the store
// connection.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
