// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	go_metrics "github.com/rcrowley/go-metrics"
)

// goMetricsCollector 把 go-metrics 注册表转换为 prometheus 指标.
// 指标是动态注册的, Describe 不返回任何描述, 是 unchecked collector
type goMetricsCollector struct {
	reg go_metrics.Registry
}

// NewGoMetricsCollector new collector over reg
func NewGoMetricsCollector(reg go_metrics.Registry) prometheus.Collector {
	return &goMetricsCollector{reg: reg}
}

func (c *goMetricsCollector) Describe(ch chan<- *prometheus.Desc) {}

func (c *goMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Each(func(name string, i interface{}) {
		name = promName(name)
		switch m := i.(type) {
		case go_metrics.Counter:
			ch <- constMetric(name+"_total", prometheus.CounterValue, float64(m.Count()))
		case go_metrics.Gauge:
			ch <- constMetric(name, prometheus.GaugeValue, float64(m.Value()))
		case go_metrics.GaugeFloat64:
			ch <- constMetric(name, prometheus.GaugeValue, m.Value())
		case go_metrics.Meter:
			ch <- constMetric(name+"_total", prometheus.CounterValue, float64(m.Count()))
		case go_metrics.Timer:
			ms := m.Snapshot()
			ch <- constMetric(name+"_count", prometheus.CounterValue, float64(ms.Count()))
			ch <- constMetric(name+"_mean_ns", prometheus.GaugeValue, ms.Mean())
		case go_metrics.Histogram:
			ms := m.Snapshot()
			ch <- constMetric(name+"_count", prometheus.CounterValue, float64(ms.Count()))
			ch <- constMetric(name+"_mean", prometheus.GaugeValue, ms.Mean())
		}
	})
}

func constMetric(name string, ty prometheus.ValueType, v float64) prometheus.Metric {
	desc := prometheus.NewDesc(name, "go-metrics "+name, nil, nil)
	return prometheus.MustNewConstMetric(desc, ty, v)
}

// promName execs/commit/err -> rps_execs_commit_err
func promName(name string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_", " ", "_")
	return Namespace + "_" + r.Replace(name)
}
