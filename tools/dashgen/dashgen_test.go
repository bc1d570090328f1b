package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/travel-search/tools/dashgen/dashboards"
	"github.com/donaldgifford/travel-search/tools/dashgen/rules"
	"github.com/donaldgifford/travel-search/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	// Verify dashboard metadata.
	require.NotNil(t, dash.Uid)
	assert.Equal(t, "travel-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Travel Search Overview", *dash.Title)

	// Verify template variable.
	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Overview, HTTP, Amadeus API, Token Warm-up, Search.
	assert.Len(t, dash.Panels, 5)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 23, totalPanels)

	// Validate PromQL and metrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "travel-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "travel-recording", group.Name)
	require.Len(t, group.Rules, 8)

	expectedRecords := []string{
		"travel:http_requests:rate5m",
		"travel:http_errors:rate5m",
		"travel:amadeus_requests:rate5m",
		"travel:amadeus_errors:rate5m",
		"travel:amadeus_retries:rate5m",
		"travel:search_requests:rate5m",
		"travel:search_failures:rate5m",
		"travel:records_rejected:rate5m",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.NotEmpty(t, rule.Expr)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)

	// Verify YAML marshaling works.
	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "travel-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "travel-alerts", group.Name)
	require.Len(t, group.Rules, 7)

	expectedAlerts := []string{
		"TravelSearchDown",
		"TravelSearchReadinessDown",
		"TravelSearchHighErrorRate",
		"TravelSearchAmadeusErrors",
		"TravelSearchAmadeusThrottled",
		"TravelSearchSearchFailures",
		"TravelSearchTokenWarmupFailing",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	known := map[string]bool{
		"travel_http_requests_total":           true,
		"travel_http_request_duration_seconds": true,
	}

	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{
			name: "known counter",
			expr: `sum(rate(travel_http_requests_total[5m]))`,
		},
		{
			name: "histogram bucket series",
			expr: `histogram_quantile(0.95, sum(rate(travel_http_request_duration_seconds_bucket[5m])) by (le))`,
		},
		{
			name:    "unknown metric",
			expr:    `rate(travel_missing_total[5m])`,
			wantErr: `unknown metric "travel_missing_total"`,
		},
		{
			name:    "parse error",
			expr:    `sum(rate(travel_http_requests_total[5m])`,
			wantErr: "parsing",
		},
		{
			name:    "empty expression",
			expr:    "  ",
			wantErr: "empty expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := validate.Expr("test", tt.expr, known)
			if tt.wantErr == "" {
				assert.True(t, result.Ok(), "unexpected errors: %v", result.Errors)
				return
			}
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.wantErr)
		})
	}
}

func TestValidateRules_Malformed(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{
			Groups: []rules.RuleGroup{
				{Name: "empty"},
				{
					Name: "bad",
					Rules: []rules.Rule{
						{Expr: `up`},
						{Record: "x:y:rate5m", Alert: "Both", Expr: `up`},
						{Alert: "NoSeverity", Expr: `up == 0`},
					},
				},
			},
		},
	}

	result := validate.Rules(cr, map[string]bool{"up": true})
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, []string{`group "empty" has no rules`}, result.Warnings)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	for _, rel := range []string{
		filepath.Join("grafana", "data", "travel-overview.json"),
		filepath.Join("prometheus", "travel-recording-rules.yaml"),
		filepath.Join("prometheus", "travel-alerts.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, "missing %s", rel)
		assert.NotEmpty(t, data)
	}

	alerts, err := os.ReadFile(filepath.Join(dir, "prometheus", "travel-alerts.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(alerts), generatedHeader)
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, RulesEnabled: true}
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
