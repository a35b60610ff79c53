// Package trellis loads hierarchical training-job manifests with
// default-merging, declarative schema validation and path-based access.
//
// Quick Start:
//
//	loader := trellis.NewLoader().
//	    WithDefaults(manifest.Defaults()).
//	    WithSchema(manifest.Schema()).
//	    WithSource(sourcefile.New("uresnet.yaml", sourcefile.Options{Required: true}))
//
//	cfg, err := loader.Load(context.Background())
//	name, _ := cfg.String("model.name")
//
// The parsed document is a tree of Node values (scalar, sequence or
// mapping). Mappings keep their key order so a loaded manifest can be
// dumped back out structurally unchanged. Explicit nulls are preserved
// and never coerced to defaults.
//
// See example_test.go and README.md for detailed usage.
package trellis
