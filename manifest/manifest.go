package manifest

import (
	"context"

	"github.com/voxelml/trellis"
	"github.com/voxelml/trellis/sourceenv"
	"github.com/voxelml/trellis/sourcefile"
)

// Optimizer names the trainer knows how to construct.
var Optimizers = []string{"Adam", "AdamW", "SGD", "RMSprop", "Adagrad"}

// Activation functions the model builder accepts.
var Activations = []string{"relu", "lrelu", "elu", "mish", "tanh"}

// Schema describes the known surface of a training manifest. Only the
// keys the trainer cannot run without are required; everything else is
// optional, and unrecognized per-module blocks under model.modules pass
// through to their consumers untouched.
func Schema() *trellis.Schema {
	return &trellis.Schema{
		Fields: []trellis.Field{
			{Path: "model.name", Kind: trellis.KindString, Required: true},
			{Path: "model.weight_path", Kind: trellis.KindString},
			{Path: "model.modules.uresnet.filters", Kind: trellis.KindInt, Min: trellis.Bound(1)},
			{Path: "model.modules.uresnet.depth", Kind: trellis.KindInt, Min: trellis.Bound(1)},
			{Path: "model.modules.uresnet.num_classes", Kind: trellis.KindInt, Min: trellis.Bound(1)},
			{Path: "model.modules.uresnet.activation", Kind: trellis.KindString, OneOf: Activations},

			{Path: "io.loader.batch_size", Kind: trellis.KindInt, Required: true, Min: trellis.Bound(1)},
			{Path: "io.loader.shuffle", Kind: trellis.KindBool},
			{Path: "io.loader.num_workers", Kind: trellis.KindInt, Min: trellis.Bound(0)},
			{Path: "io.loader.dataset.name", Kind: trellis.KindString, Required: true},

			{Path: "base.world_size", Kind: trellis.KindInt, Min: trellis.Bound(0)},
			{Path: "base.seed", Kind: trellis.KindInt},
			{Path: "base.iterations", Kind: trellis.KindInt, Min: trellis.Bound(0)},
			{Path: "base.train.optimizer.name", Kind: trellis.KindString, Required: true, OneOf: Optimizers},
			{Path: "base.train.optimizer.lr", Kind: trellis.KindFloat, Min: trellis.Bound(0)},
			{Path: "base.train.weight_prefix", Kind: trellis.KindString},
		},
	}
}

// Defaults returns the tree a manifest merges onto. Required keys carry
// no default on purpose; their absence must surface as an error.
func Defaults() *trellis.Node {
	return trellis.NewMapping().
		Put("base", trellis.NewMapping().
			Put("world_size", trellis.Int(1)).
			Put("seed", trellis.Int(-1)).
			Put("train", trellis.NewMapping().
				Put("optimizer", trellis.NewMapping().
					Put("lr", trellis.Float(0.001))))).
		Put("model", trellis.NewMapping().
			Put("weight_path", trellis.Null())).
		Put("io", trellis.NewMapping().
			Put("loader", trellis.NewMapping().
				Put("shuffle", trellis.Bool(true)).
				Put("num_workers", trellis.Int(4))))
}

// Load reads, merges and validates a training manifest from a file.
func Load(ctx context.Context, path string) (*trellis.Config, error) {
	return trellis.NewLoader().
		WithDefaults(Defaults()).
		WithSchema(Schema()).
		WithSource(sourcefile.New(path, sourcefile.Options{Required: true})).
		Load(ctx)
}

// LoadWithEnv is Load with an environment variable overlay on top of the
// file: SPINE_IO__LOADER__BATCH_SIZE=4 overrides io.loader.batch_size.
func LoadWithEnv(ctx context.Context, path, envPrefix string) (*trellis.Config, error) {
	return trellis.NewLoader().
		WithDefaults(Defaults()).
		WithSchema(Schema()).
		WithSource(sourcefile.New(path, sourcefile.Options{Required: true})).
		WithSource(sourceenv.New(sourceenv.Options{Prefix: envPrefix})).
		Load(ctx)
}
