// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env, with a lazily-loaded .env file
// via github.com/joho/godotenv.
//
// Each configuration type is parsed once per process and cached, so multiple
// components can load the same config without re-reading the environment.
package config
