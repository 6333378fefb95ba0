// Package config loads the service configuration from the environment and creates the
// database and Redis connections it describes.
//
// Variables may also come from a .env file, real environment variables take precedence.
package config
