package cache

import (
	"context"
	"testing"
)

func TestKeyDeterministic(t *testing.T) {
	type req struct {
		Features []string           `json:"features"`
		Weights  map[string]float64 `json:"weights"`
	}
	a := req{Features: []string{"Shooting"}, Weights: map[string]float64{"Shooting": 2, "Dribbling": 1}}
	b := req{Features: []string{"Shooting"}, Weights: map[string]float64{"Dribbling": 1, "Shooting": 2}}

	// Map insertion order must not matter.
	if Key("rankings", a) != Key("rankings", b) {
		t.Error("equivalent requests produced different keys")
	}
	if Key("rankings", a) == Key("compare", a) {
		t.Error("different operations share a key")
	}
	c := a
	c.Features = []string{"Dribbling"}
	if Key("rankings", a) == Key("rankings", c) {
		t.Error("different requests share a key")
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *ResultCache
	ctx := context.Background()

	if _, ok := c.Get(ctx, "scout:rankings:abc"); ok {
		t.Error("nil cache reported a hit")
	}
	c.Set(ctx, "scout:rankings:abc", []byte("{}")) // must not panic
}
