// Package manifest binds the generic trellis loader to the training-job
// manifest: the schema of known keys, the defaults tree, and convenience
// loaders. The schema is deliberately permissive; a manifest freely nests
// module-specific blocks the trainer's components interpret themselves.
package manifest
