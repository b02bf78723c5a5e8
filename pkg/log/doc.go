// Package log provides the structured logging abstraction used by the
// mediaprep engine.
//
// Engine packages log through the [Logger] interface so they stay free of a
// concrete logging dependency; the zerolog adapter is wired in by the CLI
// and the noop logger keeps tests quiet. Fields are typed key-value pairs
// built with the constructors in this package.
package log
