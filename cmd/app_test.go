package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/export"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

const scenario = `{
  "end": "2025-12-31",
  "currency": "EUR",
  "entities": [
    {"id": "chq", "kind": "Chequing", "initialValue": 1000},
    {"id": "house", "name": "House", "kind": "Asset", "start": "2025-01-01", "initialValue": 100000, "rate": 0.02}
  ],
  "transfers": [
    {"from": "external", "to": "chq", "amount": 500, "start": "2025-01-31", "frequency": "Monthly"}
  ]
}`

// writeScenario writes a scenario file in a temporary directory and returns its path.
func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSettings(t *testing.T) {
	t.Setenv(EnvScenario, "from-env.json")
	t.Setenv(EnvCurrency, "usd")
	t.Setenv(EnvRecord, "")
	t.Setenv(EnvVerbose, "false")

	cfg, err := Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	want := Config{Scenario: "from-env.json", Currency: "usd"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}

	*scenarioFile = "from-flag.json"
	defer func() { *scenarioFile = "" }()
	if cfg, _ := Settings(); cfg.Scenario != "from-flag.json" {
		t.Errorf("Scenario = %q want the flag value", cfg.Scenario)
	}

	t.Setenv(EnvVerbose, "maybe")
	if _, err := Settings(); err == nil {
		t.Errorf("Settings() with an invalid boolean succeeded")
	}
}

func TestSettingsDefaults(t *testing.T) {
	for _, name := range []string{EnvScenario, EnvCurrency, EnvRecord, EnvVerbose} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	cfg, err := Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if cfg.Scenario != "scenario.json" || cfg.Verbose {
		t.Errorf("Settings() = %+v want the default scenario, not verbose", cfg)
	}
}

func TestDecodeModelOverrides(t *testing.T) {
	path := writeScenario(t, "house.json", scenario)
	m, err := DecodeModel(path, Config{Currency: "cad", Record: "quarterly"}, zap.NewNop())
	if err != nil {
		t.Fatalf("DecodeModel() error = %v", err)
	}
	if m.Params.Currency != "CAD" || m.Params.Record != forecast.Quarterly {
		t.Errorf("Params = %+v want CAD, Quarterly", m.Params)
	}

	if _, err := DecodeModel(path, Config{Record: "weekly"}, zap.NewNop()); err == nil {
		t.Errorf("DecodeModel() with a weekly record succeeded")
	}
	if _, err := DecodeModel(filepath.Join(t.TempDir(), "missing.json"), Config{}, zap.NewNop()); err == nil {
		t.Errorf("DecodeModel() of a missing file succeeded")
	}
}

func TestRunScenarios(t *testing.T) {
	low := writeScenario(t, "low.json", scenario)
	high := writeScenario(t, "high.json", strings.Replace(scenario, `"rate": 0.02`, `"rate": 0.05`, 1))

	models, err := RunScenarios(context.Background(), []string{low, high}, Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("RunScenarios() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models want 2", len(models))
	}
	lowValue, _ := models[0].Report().ValueAsOf("house", date.MustParse("2025-12-31"))
	highValue, _ := models[1].Report().ValueAsOf("house", date.MustParse("2025-12-31"))
	if !highValue.GreaterThan(lowValue) {
		t.Errorf("house values = %v, %v want models in the order of files", lowValue, highValue)
	}

	broken := writeScenario(t, "broken.json", `{"entities": [`)
	if _, err := RunScenarios(context.Background(), []string{low, broken}, Config{}, zap.NewNop()); err == nil {
		t.Errorf("RunScenarios() with a broken file succeeded")
	}
}

func TestExportJSON(t *testing.T) {
	path := writeScenario(t, "house.json", scenario)
	m, err := RunScenario(context.Background(), path, Config{Record: "annually"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	r := m.Report()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, r, ""); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var doc struct {
		Currency string `json:"currency"`
		Entities []struct {
			ID        string            `json:"id"`
			Snapshots []json.RawMessage `json:"snapshots"`
		} `json:"entities"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Currency != "EUR" || len(doc.Entities) != 2 || len(doc.Entities[1].Snapshots) != 2 {
		t.Errorf("ExportJSON() = %s", buf.String())
	}

	buf.Reset()
	if err := ExportJSON(&buf, r, `$.entities[?(@.id=="chq")].snapshots[*].value`); err != nil {
		t.Fatalf("ExportJSON(query) error = %v", err)
	}
	var values []float64
	if err := json.Unmarshal(buf.Bytes(), &values); err != nil {
		t.Fatalf("invalid query result: %v\n%s", err, buf.String())
	}
	// chequing account opened on 2025-01-01, then 12 monthly deposits.
	if diff := cmp.Diff([]float64{1000, 7000}, values); diff != "" {
		t.Errorf("query result mismatch (-want +got):\n%s", diff)
	}

	if err := ExportJSON(&buf, r, "$[["); err == nil {
		t.Errorf("ExportJSON() with an invalid query succeeded")
	}
}

func TestExportSQLite(t *testing.T) {
	ctx := context.Background()
	path := writeScenario(t, "house.json", scenario)
	m, err := RunScenario(ctx, path, Config{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(t.TempDir(), "forecast.db")
	if err := ExportSQLite(ctx, db, "house", m.Report()); err != nil {
		t.Fatalf("ExportSQLite() error = %v", err)
	}

	store, err := export.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	got, err := store.History(ctx, "house", "house")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 13 {
		t.Errorf("got %d snapshots want 13", len(got))
	}
}

func TestFrequenciesMarkdown(t *testing.T) {
	out := frequenciesMarkdown()
	for _, want := range []string{"Semiannually", "2 quarters", "Biweekly", "2 weeks"} {
		if !strings.Contains(out, want) {
			t.Errorf("frequencies table has no %q:\n%s", want, out)
		}
	}
}
