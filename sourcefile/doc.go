// Package sourcefile provides file-based configuration sources for trellis.
//
// Supports YAML (primary manifest format), JSON and TOML, with format
// auto-detection from the file extension. YAML and JSON documents keep
// their mapping key order; scalars get the narrowest kind their literal
// syntax allows, and explicit nulls are preserved as nulls.
package sourcefile
