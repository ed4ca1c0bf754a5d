// Package config loads feather.yaml.
//
// The file is optional. Every key has a default, and command-line flags
// override whatever the file sets:
//
//	server:
//	  addr: localhost:3000
//	  read_timeout: 10s
//	events: [click, input, change]
//	runtime:
//	  max_flush_passes: 100
//	  strict_hooks: true
//	log:
//	  level: debug
//	metrics:
//	  namespace: feather
//	tracing:
//	  tracer_name: github.com/feather-dev/feather
//
// Load and LoadOptional return *errors.FeatherError values with code E201
// for unreadable, malformed or invalid files.
package config
