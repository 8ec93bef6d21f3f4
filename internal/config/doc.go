// Package config loads, normalizes, and validates learnsubs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LEARNSUBS_FREQUENCY_DB
// environment fallback. The Config type centralizes the language table
// (language code to NLP model and frequency corpus), difficulty thresholds,
// and the paths the extractor and frequency store need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
