package trellis_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxelml/trellis"
	"github.com/voxelml/trellis/sourcefile"
)

func ExampleLoader_Load() {
	doc := `
model:
  name: uresnet
  weight_path: null
io:
  loader:
    batch_size: 2
`
	schema := &trellis.Schema{Fields: []trellis.Field{
		{Path: "model.name", Kind: trellis.KindString, Required: true},
		{Path: "io.loader.batch_size", Kind: trellis.KindInt, Min: trellis.Bound(1)},
	}}
	defaults := trellis.NewMapping().
		Put("io", trellis.NewMapping().
			Put("loader", trellis.NewMapping().
				Put("shuffle", trellis.Bool(true))))

	cfg, err := trellis.NewLoader().
		WithDefaults(defaults).
		WithSchema(schema).
		WithSource(sourcefile.FromReader(strings.NewReader(doc), "yaml", "example")).
		Load(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	name, _ := cfg.String("model.name")
	batch, _ := cfg.Int("io.loader.batch_size")
	shuffle, _ := cfg.Bool("io.loader.shuffle")
	fmt.Println(name, batch, shuffle, cfg.IsNull("model.weight_path"))
	// Output: uresnet 2 true true
}

func ExampleValidate() {
	root := trellis.NewMapping().
		Put("base", trellis.NewMapping().
			Put("train", trellis.NewMapping().
				Put("optimizer", trellis.NewMapping().
					Put("name", trellis.String("NotAnOptimizer")))))

	schema := &trellis.Schema{Fields: []trellis.Field{
		{Path: "model.name", Kind: trellis.KindString, Required: true},
		{Path: "base.train.optimizer.name", Kind: trellis.KindString, OneOf: []string{"Adam", "SGD"}},
	}}

	err := trellis.Validate(root, schema)
	fmt.Println(err)
	// Output:
	// manifest validation failed: 2 errors
	//   - model.name: required (key is required but not provided)
	//   - base.train.optimizer.name: oneof (value "NotAnOptimizer" must be one of: Adam, SGD)
}

func ExampleMerge() {
	user := trellis.NewMapping().
		Put("weight_path", trellis.Null()).
		Put("lr", trellis.Float(0.01))
	defaults := trellis.NewMapping().
		Put("weight_path", trellis.String("snapshot.ckpt")).
		Put("lr", trellis.Float(0.001)).
		Put("seed", trellis.Int(-1))

	merged := trellis.Merge(user, defaults)

	wp, _ := merged.Child("weight_path")
	lr, _ := merged.Child("lr")
	seed, _ := merged.Child("seed")
	lrVal, _ := lr.AsFloat()
	seedVal, _ := seed.AsInt()
	fmt.Println(wp.IsNull(), lrVal, seedVal)
	// Output: true 0.01 -1
}
