// Package config loads environment-style configuration into tagged
// structs. A .env file in the working directory is applied once, on the
// first Load, so local development does not require exported variables.
package config
