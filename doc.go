// File: cogwheel/doc.go

// Package cogwheel provides typed configuration management for Go
// applications: loading strongly-typed configuration structs from JSON,
// TOML, or YAML text, writing default or explicit configuration files,
// and applying sparse, allow-listed overlays onto an established value.
//
// Features:
//   - One builder, three formats (JSON, TOML, YAML) behind a codec registry
//   - Completeness validation: a required field missing from the document
//     fails the load instead of silently zeroing
//   - Create-exclusive and overwrite file creation with a verifying re-read
//   - Sparse merges scoped by an explicit allow-list of field paths
//   - Variant guessing from the file extension when none is given
//
// Quick Start:
//
//	type Config struct {
//	    Host string `toml:"host" json:"host" yaml:"host"`
//	    Port int    `toml:"port" json:"port" yaml:"port"`
//	}
//
//	cfg, err := cogwheel.LoadFile[Config]("config.toml", cogwheel.VariantUnknown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Full builder flow:
//
//	b := cogwheel.New[Config]()
//	if err := b.UseFile("config.toml", cogwheel.VariantTOML); err != nil {
//	    return err
//	}
//	if err := b.Merge(`port = 9090`, []string{"port"}, cogwheel.VariantTOML); err != nil {
//	    return err
//	}
//	cfg, err := b.Build()
//
// Field addressing uses the first part of the "toml" struct tag, falling
// back to the Go field name. Applications that load the same struct from
// several formats should tag fields consistently for each codec.
//
// Error Handling:
// Every operation returns its error to the caller; the package never logs
// or retries. Sentinel errors (ErrDecode, ErrFileNotFound, ...) are
// wrapped with context and answer to errors.Is.
//
// Concurrency:
// A Builder holds mutable state and is not safe for concurrent use from
// multiple goroutines without external synchronization. The codec
// registry itself is safe for concurrent registration and lookup.
package cogwheel
