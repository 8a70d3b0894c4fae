package vectorconfig

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingSource wraps another Source and counts materializations.
// The counter is atomic so tests can hammer a Loader from many goroutines.
type countingSource struct {
	inner Source
	calls atomic.Int32
	delay time.Duration
}

func (s *countingSource) LoadCatalog(ctx context.Context) (ConfigMap, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.inner.LoadCatalog(ctx)
}

func testCatalog() ConfigMap {
	desc := "v5 SMA LSTM STACKS"
	features := uint32(158)
	return ConfigMap{
		"default": {Path: "v5.SPY-CORR-NO-SCALE-2.bin"},
		"v5-sma-lstm-stacks": {
			Path:        "v5.SMA-LSTM-STACKS.bin",
			Description: &desc,
			Features:    &features,
		},
	}
}

func TestLoader_ByKey_ReturnsStoredRecord(t *testing.T) {
	catalog := testCatalog()
	l := NewLoader(&StaticSource{Configs: catalog})

	got, err := l.ByKey(context.Background(), "v5-sma-lstm-stacks")
	if err != nil {
		t.Fatalf("ByKey: %v", err)
	}
	if !reflect.DeepEqual(got, catalog["v5-sma-lstm-stacks"]) {
		t.Fatalf("record mismatch: got %+v want %+v", got, catalog["v5-sma-lstm-stacks"])
	}
}

func TestLoader_ByKey_NotFound(t *testing.T) {
	l := NewLoader(&StaticSource{Configs: testCatalog()})

	_, err := l.ByKey(context.Background(), "nonexistent-key")
	if err == nil {
		t.Fatalf("expected error for missing key")
	}
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	// A loaded catalog must never report unavailability for a bad key.
	if errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("missing key must not match ErrCatalogUnavailable: %v", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-key") {
		t.Fatalf("error should carry the key: %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Key != "nonexistent-key" {
		t.Fatalf("expected *NotFoundError with key, got %#v", err)
	}
}

func TestLoader_AllMaterializesOnce(t *testing.T) {
	src := &countingSource{inner: &StaticSource{Configs: testCatalog()}}
	l := NewLoader(src)

	first, err := l.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	second, err := l.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("expected 1 source call, got %d", n)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("catalogs differ across calls:\n%+v\n%+v", first, second)
	}
}

type failingSource struct{}

func (failingSource) LoadCatalog(context.Context) (ConfigMap, error) {
	return nil, fmt.Errorf("manifest fetch failed")
}

func TestLoader_CatalogUnavailable(t *testing.T) {
	src := &countingSource{inner: failingSource{}}
	l := NewLoader(src)

	_, err := l.All(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}

	// The failure is sticky and propagates through ByKey without reloading.
	_, err = l.ByKey(context.Background(), "default")
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable from ByKey, got %v", err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("expected 1 source call, got %d", n)
	}
}

// Many goroutines racing to be the first reader must trigger exactly one
// materialization, and every one of them must observe the same catalog.
func TestLoader_ConcurrentFirstAccess(t *testing.T) {
	src := &countingSource{
		inner: &StaticSource{Configs: testCatalog()},
		delay: 10 * time.Millisecond, // widen the race window
	}
	l := NewLoader(src)

	const goroutines = 16
	var (
		wg      sync.WaitGroup
		results [goroutines]ConfigMap
		errs    [goroutines]error
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = l.All(context.Background())
		}(i)
	}
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Fatalf("expected 1 source call, got %d", n)
	}
	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: All: %v", i, errs[i])
		}
		if !reflect.DeepEqual(results[i], results[0]) {
			t.Fatalf("goroutine %d saw a different catalog: %+v vs %+v", i, results[i], results[0])
		}
	}
}

func TestLookup(t *testing.T) {
	catalog := testCatalog()

	got, ok := Lookup(catalog, "default")
	if !ok {
		t.Fatalf("expected default to be present")
	}
	if got.Path != "v5.SPY-CORR-NO-SCALE-2.bin" {
		t.Fatalf("unexpected path: %q", got.Path)
	}

	if _, ok := Lookup(catalog, "missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}
}
