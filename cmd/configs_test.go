package cmd

import (
	"reflect"
	"testing"

	"github.com/etfmatcher/etfv-cli/internal/vectorconfig"
)

func TestSortedKeys_NumericAware(t *testing.T) {
	configs := vectorconfig.ConfigMap{
		"v10-sma-lstm-stacks": {Path: "a.bin"},
		"v5-sma-lstm-stacks":  {Path: "b.bin"},
		"v2-corr":             {Path: "c.bin"},
		"default":             {Path: "d.bin"},
	}

	got := sortedKeys(configs)
	want := []string{"default", "v2-corr", "v5-sma-lstm-stacks", "v10-sma-lstm-stacks"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("key order mismatch: got %v want %v", got, want)
	}
}
