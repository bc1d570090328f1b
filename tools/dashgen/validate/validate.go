// Package validate checks generated dashboards and rule files: every PromQL
// expression must parse and may only select known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/travel-search/tools/dashgen/rules"
)

// histogramSuffixes are the series suffixes a histogram metric exposes.
var histogramSuffixes = []string{"_bucket", "_count", "_sum"}

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Query parses expr and returns the metric names it selects.
func Query(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names, nil
}

// Known reports whether name, or the histogram it is a series of, is in
// known.
func Known(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Expr validates a single expression against the known metric set.
func Expr(where, expr string, known map[string]bool) Result {
	var r Result
	if strings.TrimSpace(expr) == "" {
		r.errorf("%s: empty expression", where)
		return r
	}

	names, err := Query(expr)
	if err != nil {
		r.errorf("%s: %v", where, err)
		return r
	}
	for _, name := range names {
		if !Known(name, known) {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
	return r
}

type jsonTarget struct {
	Expr string `json:"expr"`
}

type jsonPanel struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Targets []jsonTarget `json:"targets"`
	Panels  []jsonPanel  `json:"panels"`
}

type jsonDashboard struct {
	Panels []jsonPanel `json:"panels"`
}

// Dashboard validates every panel query in dash. Panels without queries
// produce warnings.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	// Walk the serialized form so row and panel variants are handled alike.
	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var doc jsonDashboard
	if err := json.Unmarshal(data, &doc); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	for _, p := range doc.Panels {
		r.merge(panel(p, known))
	}
	return r
}

func panel(p jsonPanel, known map[string]bool) Result {
	var r Result
	if p.Type == "row" || len(p.Panels) > 0 {
		for _, child := range p.Panels {
			r.merge(panel(child, known))
		}
		return r
	}

	if len(p.Targets) == 0 {
		r.warnf("panel %q has no queries", p.Title)
		return r
	}
	for i, t := range p.Targets {
		r.merge(Expr(fmt.Sprintf("panel %q target %d", p.Title, i), t.Expr, known))
	}
	return r
}

// Rules validates a PrometheusRule CR. Each rule must be either a
// recording rule or an alert, and alerts must carry a severity.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		if len(g.Rules) == 0 {
			r.warnf("group %q has no rules", g.Name)
		}
		for i, rule := range g.Rules {
			where := fmt.Sprintf("group %q rule %d", g.Name, i)
			switch {
			case rule.Record != "" && rule.Alert != "":
				r.errorf("%s: sets both record and alert", where)
			case rule.Record != "":
				where = fmt.Sprintf("record %q", rule.Record)
				if !known[rule.Record] {
					r.warnf("%s: not listed as a known metric", where)
				}
			case rule.Alert != "":
				where = fmt.Sprintf("alert %q", rule.Alert)
				if rule.Labels["severity"] == "" {
					r.errorf("%s: missing severity label", where)
				}
			default:
				r.errorf("%s: sets neither record nor alert", where)
			}
			r.merge(Expr(where, rule.Expr, known))
		}
	}
	return r
}
