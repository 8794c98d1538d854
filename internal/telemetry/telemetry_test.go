package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCompileMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := New(WithRegistry(reg))

	_, finish := tel.StartCompile(context.Background(), "app/routes")
	finish(12, nil)

	if got := testutil.ToFloat64(tel.compilesTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("compiles_total{result=ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tel.routesCompiled); got != 12 {
		t.Errorf("routes_compiled = %v, want 12", got)
	}
}

func TestCompileMetricsError(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := New(WithRegistry(reg))

	_, finish := tel.StartCompile(context.Background(), "app/routes")
	finish(0, errors.New("boom"))

	if got := testutil.ToFloat64(tel.compilesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("compiles_total{result=error} = %v, want 1", got)
	}
	// The gauge is only updated on success.
	if got := testutil.ToFloat64(tel.routesCompiled); got != 0 {
		t.Errorf("routes_compiled = %v, want 0", got)
	}
}

func TestCustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := New(WithRegistry(reg), WithNamespace("custom"))

	_, finish := tel.StartCompile(context.Background(), "app/routes")
	finish(1, nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "custom_compiles_total" {
			found = true
		}
	}
	if !found {
		t.Error("custom_compiles_total not registered")
	}
}
