package trellis

import (
	"testing"
)

func TestMergeScalarOverride(t *testing.T) {
	user := NewMapping().Put("batch_size", Int(8))
	defaults := NewMapping().
		Put("batch_size", Int(2)).
		Put("shuffle", Bool(true))

	merged := Merge(user, defaults)

	if v, _ := mustChild(t, merged, "batch_size").AsInt(); v != 8 {
		t.Errorf("batch_size = %d, want 8 (user overrides default)", v)
	}
	if v, _ := mustChild(t, merged, "shuffle").AsBool(); !v {
		t.Error("shuffle default was not filled in")
	}
}

func TestMergeMappingRecurses(t *testing.T) {
	user := NewMapping().
		Put("optimizer", NewMapping().Put("name", String("SGD")))
	defaults := NewMapping().
		Put("optimizer", NewMapping().
			Put("name", String("Adam")).
			Put("lr", Float(0.001)))

	merged := Merge(user, defaults)
	optimizer := mustChild(t, merged, "optimizer")

	if v, _ := mustChild(t, optimizer, "name").AsString(); v != "SGD" {
		t.Errorf("optimizer.name = %q, want SGD", v)
	}
	if v, _ := mustChild(t, optimizer, "lr").AsFloat(); v != 0.001 {
		t.Errorf("optimizer.lr = %g, want 0.001 (default preserved)", v)
	}
}

func TestMergeSequenceReplaces(t *testing.T) {
	user := NewMapping().Put("file_keys", Sequence(String("run1.root")))
	defaults := NewMapping().Put("file_keys", Sequence(String("a.root"), String("b.root")))

	merged := Merge(user, defaults)
	seq := mustChild(t, merged, "file_keys")

	if seq.Len() != 1 {
		t.Fatalf("sequence length = %d, want 1 (replace, not concatenate)", seq.Len())
	}
	if v, _ := seq.Items()[0].AsString(); v != "run1.root" {
		t.Errorf("item = %q, want run1.root", v)
	}
}

func TestMergeNullPreservation(t *testing.T) {
	// {"weight_path": null} merged against {"weight_path": "foo"} stays null.
	user := NewMapping().Put("weight_path", Null())
	defaults := NewMapping().Put("weight_path", String("foo"))

	merged := Merge(user, defaults)
	node := mustChild(t, merged, "weight_path")

	if !node.IsNull() {
		t.Errorf("weight_path kind = %v, want null (explicit null overrides default)", node.Kind())
	}
}

func TestMergeIdempotent(t *testing.T) {
	user := NewMapping().
		Put("model", NewMapping().
			Put("name", String("uresnet")).
			Put("weight_path", Null())).
		Put("io", NewMapping().
			Put("loader", NewMapping().Put("batch_size", Int(2))))
	defaults := NewMapping().
		Put("model", NewMapping().Put("weight_path", String("default.ckpt"))).
		Put("io", NewMapping().
			Put("loader", NewMapping().
				Put("batch_size", Int(1)).
				Put("shuffle", Bool(true)))).
		Put("base", NewMapping().Put("seed", Int(-1)))

	once := Merge(user, defaults)
	twice := Merge(once, defaults)

	if !twice.Equal(once) {
		t.Error("Merge(Merge(x, d), d) != Merge(x, d)")
	}
}

func TestMergeKeyOrder(t *testing.T) {
	user := NewMapping().
		Put("io", Int(1)).
		Put("model", Int(2))
	defaults := NewMapping().
		Put("base", Int(0)).
		Put("model", Int(9))

	merged := Merge(user, defaults)

	// User keys first in user order, defaults-only keys after.
	want := []string{"io", "model", "base"}
	got := merged.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeNilInputs(t *testing.T) {
	defaults := NewMapping().Put("seed", Int(-1))

	if got := Merge(nil, defaults); got != defaults {
		t.Error("Merge(nil, d) should return d")
	}
	user := NewMapping().Put("seed", Int(7))
	if got := Merge(user, nil); got != user {
		t.Error("Merge(u, nil) should return u")
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	user := NewMapping().Put("a", Int(1))
	defaults := NewMapping().Put("b", Int(2))

	userBefore := user.Clone()
	defaultsBefore := defaults.Clone()

	_ = Merge(user, defaults)

	if !user.Equal(userBefore) {
		t.Error("Merge mutated the user tree")
	}
	if !defaults.Equal(defaultsBefore) {
		t.Error("Merge mutated the defaults tree")
	}
}
