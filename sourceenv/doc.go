// Package sourceenv provides environment variable configuration sources
// for trellis, used as an optional overlay on top of a manifest file.
//
// Keys nest on double underscores and values get YAML scalar typing:
//
//	SPINE_IO__LOADER__BATCH_SIZE=4  →  io.loader.batch_size: 4
package sourceenv
