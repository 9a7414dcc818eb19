package report

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/dispatch"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func TestAll_SortedByID(t *testing.T) {
	defs := All()
	if len(defs) != 7 {
		t.Fatalf("expected 7 metrics, got %d", len(defs))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].ID >= defs[i].ID {
			t.Errorf("metrics not sorted: %s before %s", defs[i-1].ID, defs[i].ID)
		}
	}
	if defs[0].ID != "RPT001" || defs[len(defs)-1].ID != "RPT007" {
		t.Errorf("range = %s..%s, want RPT001..RPT007", defs[0].ID, defs[len(defs)-1].ID)
	}
}

func TestDefaults_ExcludesOptional(t *testing.T) {
	for _, def := range Defaults() {
		if def.ID == "RPT007" {
			t.Error("demand-load-factor must not be a default metric")
		}
		if !def.Default {
			t.Errorf("%s is not marked default", def.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	if def, ok := Lookup("rpt003"); !ok || def.Name != "backstop-share" {
		t.Errorf("Lookup(rpt003) = %v, %v", def, ok)
	}
	if def, ok := Lookup("import-share"); !ok || def.ID != "RPT006" {
		t.Errorf("Lookup(import-share) = %v, %v", def, ok)
	}
	if _, ok := Lookup("nonsense"); ok {
		t.Error("expected miss for unknown metric")
	}
	if _, ok := Lookup(""); ok {
		t.Error("expected miss for empty query")
	}
}

func TestResolve(t *testing.T) {
	defs, err := Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve(nil): %v", err)
	}
	if len(defs) != len(Defaults()) {
		t.Errorf("empty selection should yield defaults, got %d metrics", len(defs))
	}

	defs, err = Resolve([]string{"total-cost", "RPT001", "import-share"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("expected duplicate to be dropped, got %d metrics", len(defs))
	}

	if _, err := Resolve([]string{"bogus"}); err == nil || !strings.Contains(err.Error(), "unknown metric") {
		t.Errorf("error = %v, want unknown metric", err)
	}

	if _, err := Resolve([]string{"", "  "}); err == nil {
		t.Error("expected error for blank-only selection")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" total-cost, import-share ,,energy-served ")
	want := []string{"total-cost", "import-share", "energy-served"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if SplitList("  ") != nil {
		t.Error("blank input should yield nil")
	}
}

func TestValue_Render(t *testing.T) {
	if got := AvailableValue(12.345).Render(KindFloat, 2); got != "12.35" {
		t.Errorf("float render = %q", got)
	}
	if got := AvailableValue(12.6).Render(KindInteger, 0); got != "13" {
		t.Errorf("integer render = %q", got)
	}
	if got := AvailableValue(0.256).Render(KindPercent, 1); got != "25.6%" {
		t.Errorf("percent render = %q", got)
	}
	if got := UnavailableValue().Render(KindFloat, 2); got != "n/a" {
		t.Errorf("unavailable render = %q", got)
	}
}

func sampleResults() *dispatch.Results {
	return &dispatch.Results{
		Model:          "T16",
		Timesteps:      2,
		Weights:        series.Weights{1, 1},
		TotalCost:      1234.5,
		EnergyServed:   200,
		BackstopEnergy: 50,
		ExcessEnergy:   5,
		Capacity:       map[string]float64{"plant": 10},
		Generation:     map[string]series.Series{"plant": {10, 5}},
		Imports:        map[string]series.Series{"link": {20, 20}},
		Demand:         map[string]series.Series{"demand": {50, 100}},
	}
}

func computeMetric(t *testing.T, id string, res *dispatch.Results) Value {
	t.Helper()
	def, ok := Lookup(id)
	if !ok {
		t.Fatalf("metric %s not registered", id)
	}
	v, err := def.Compute(res)
	if err != nil {
		t.Fatalf("%s: %v", id, err)
	}
	return v
}

func TestCompute_Shares(t *testing.T) {
	res := sampleResults()

	cases := []struct {
		id   string
		want float64
	}{
		{"RPT001", 1234.5},
		{"RPT002", 200},
		{"RPT003", 0.25},
		{"RPT004", 5},
		{"RPT005", 0.75},
		{"RPT006", 0.2},
		{"RPT007", 0.75},
	}
	for _, tc := range cases {
		v := computeMetric(t, tc.id, res)
		if !v.Available {
			t.Errorf("%s unavailable", tc.id)
			continue
		}
		if math.Abs(v.Number-tc.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tc.id, v.Number, tc.want)
		}
	}
}

func TestCompute_UnavailableWithoutDemand(t *testing.T) {
	res := &dispatch.Results{Timesteps: 1, Weights: series.Weights{1}}

	for _, id := range []string{"RPT003", "RPT005", "RPT006", "RPT007"} {
		if v := computeMetric(t, id, res); v.Available {
			t.Errorf("%s should be unavailable on an empty run", id)
		}
	}
}
