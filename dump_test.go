package trellis

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDumpYAMLKeyOrder(t *testing.T) {
	root := NewMapping().
		Put("base", NewMapping().Put("seed", Int(0))).
		Put("io", NewMapping().Put("batch_size", Int(2))).
		Put("model", NewMapping().Put("name", String("uresnet")))
	src := &stubSource{name: "test", node: root}
	cfg, err := NewLoader().WithSource(src).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, cfg); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}

	out := buf.String()
	baseIdx := strings.Index(out, "base:")
	ioIdx := strings.Index(out, "io:")
	modelIdx := strings.Index(out, "model:")
	if baseIdx < 0 || ioIdx < 0 || modelIdx < 0 {
		t.Fatalf("missing keys in dump:\n%s", out)
	}
	if !(baseIdx < ioIdx && ioIdx < modelIdx) {
		t.Errorf("keys out of order in dump:\n%s", out)
	}
}

func TestDumpJSONOrderAndKinds(t *testing.T) {
	root := NewMapping().
		Put("b", Int(2)).
		Put("a", Float(0.5)).
		Put("n", Null()).
		Put("s", Sequence(String("x"), Bool(true)))
	src := &stubSource{name: "test", node: root}
	cfg, err := NewLoader().WithSource(src).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, cfg, AsJSON(), WithIndent("")); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	want := `{"b":2,"a":0.5,"n":null,"s":["x",true]}`
	if got != want {
		t.Errorf("JSON dump = %s, want %s", got, want)
	}
}

func TestDumpNilConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, nil); err == nil {
		t.Error("Dump(nil) should fail")
	}
}

func TestFormatYAMLFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "fraction", in: 0.001, want: "0.001"},
		{name: "integral float keeps float syntax", in: 2, want: "2.0"},
		{name: "exponent", in: 1e21, want: "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatYAMLFloat(tt.in); got != tt.want {
				t.Errorf("formatYAMLFloat(%g) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
