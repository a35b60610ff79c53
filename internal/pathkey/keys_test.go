package pathkey

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "double underscore nests", in: "IO__LOADER__BATCH_SIZE", want: "io.loader.batch_size"},
		{name: "single underscore preserved", in: "WEIGHT_PREFIX", want: "weight_prefix"},
		{name: "mixed", in: "BASE__TRAIN__OPTIMIZER__NAME", want: "base.train.optimizer.name"},
		{name: "already lowercase", in: "model.name", want: "model.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "dotted path", in: "io.loader.batch_size", want: []string{"io", "loader", "batch_size"}},
		{name: "single segment", in: "model", want: []string{"model"}},
		{name: "empty path", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name        string
		prefix, key string
		want        string
	}{
		{name: "both parts", prefix: "io.loader", key: "batch_size", want: "io.loader.batch_size"},
		{name: "empty prefix", prefix: "", key: "model", want: "model"},
		{name: "empty key", prefix: "model", key: "", want: "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.prefix, tt.key); got != tt.want {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
