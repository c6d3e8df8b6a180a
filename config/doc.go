// Package config loads service settings from the environment and derives
// the per-component configuration structs from them. Every knob has a safe
// default so a zero environment yields a runnable, unauthenticated service.
package config
