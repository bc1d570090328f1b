// Package panels provides Grafana dashboard panel builders for
// travel-search metrics.
package panels

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus job label the server is scraped under.
const Job = "travel-search"

// Amadeus per-second request quotas. The window gauge is compared against
// the test quota since it is the stricter of the two.
const (
	AmadeusTestTPS       = 10
	AmadeusProductionTPS = 40
)

// Grid sizes on Grafana's 24-column layout.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth  = 12
	TSHeight = 8

	ThirdWidth = 8
	FullWidth  = 24
)

// Sel renders a selector for metric scoped to Job plus any extra matchers.
func Sel(metric string, matchers ...string) string {
	all := append([]string{fmt.Sprintf("job=%q", Job)}, matchers...)
	return metric + "{" + strings.Join(all, ",") + "}"
}

// Quantile renders a histogram_quantile over a 5m rate of metric's buckets,
// aggregated by le plus the given labels.
func Quantile(q float64, metric string, by ...string) string {
	return fmt.Sprintf("histogram_quantile(%g, sum(rate(%s[5m])) by (%s))",
		q, Sel(metric+"_bucket"), strings.Join(append([]string{"le"}, by...), ", "))
}

// PerMinute renders a per-minute rate of counter summed by the given labels.
func PerMinute(counter string, by ...string) string {
	expr := fmt.Sprintf("sum(rate(%s[5m]))", Sel(counter))
	if len(by) > 0 {
		expr += " by (" + strings.Join(by, ", ") + ")"
	}
	return expr + " * 60"
}

// DSRef returns a datasource reference pointing at the ${datasource}
// template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus query target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// Series starts a line timeseries panel with the dashboard's shared styling.
// Callers add targets and override thresholds or colors as needed.
func Series(title, description string, width uint32) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(width).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleLine).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// Single starts a stat panel for one expression.
func Single(title, description, expr string, height uint32) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(height).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		ColorScheme(ColorSchemeThresholds())
}

// ThresholdsRedGreen is red below greenAbove and green at or above it.
func ThresholdsRedGreen(greenAbove float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "red"},
		dashboard.Threshold{Value: cog.ToPtr(greenAbove), Color: "green"},
	)
}

// ThresholdsGreenYellowRed returns three-tier thresholds.
func ThresholdsGreenYellowRed(yellow, red float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "green"},
		dashboard.Threshold{Value: cog.ToPtr(yellow), Color: "yellow"},
		dashboard.Threshold{Value: cog.ToPtr(red), Color: "red"},
	)
}

// ThresholdsGreenOnly returns a single green step.
func ThresholdsGreenOnly() cog.Builder[dashboard.ThresholdsConfig] {
	return steps(dashboard.Threshold{Color: "green"})
}

func steps(s ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(s)
}

// ColorSchemeThresholds colors series by their threshold step.
func ColorSchemeThresholds() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().
		Mode(dashboard.FieldColorModeIdThresholds)
}

// ColorSchemePaletteClassic colors series from the classic palette.
func ColorSchemePaletteClassic() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().
		Mode(dashboard.FieldColorModeIdPaletteClassic)
}

// TableLegend shows the legend as a table under the graph with the given
// calculation columns.
func TableLegend(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}

// MultiTooltip lists every series in the tooltip, largest first.
func MultiTooltip() *common.VizTooltipOptionsBuilder {
	return common.NewVizTooltipOptionsBuilder().
		Mode(common.TooltipDisplayModeMulti).
		Sort(common.SortOrderDescending)
}
