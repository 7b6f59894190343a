// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 指标的上报: influxdb, 日志, 以及 prometheus 拉取
package metrics

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	rpslog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/metrics/influxdb"
	"github.com/33cn/rps/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

type influxDBPara struct {
	// 以纳秒为单位
	Duration  int64  `json:"duration,omitempty"`
	URL       string `json:"url,omitempty"`
	Database  string `json:"database,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

type logPara struct {
	// 以纳秒为单位
	Duration int64 `json:"duration,omitempty"`
}

var (
	log = rpslog.New("module", "rps metrics")
)

// StartMetrics 根据配置文件相关参数启动指标上报
func StartMetrics(metrics *types.Metrics, sub map[string][]byte) {
	if metrics == nil || !metrics.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}

	switch metrics.DataEmitMode {
	case "influxdb":
		subcfg, ok := sub[metrics.DataEmitMode]
		if !ok {
			log.Error("nil parameter for influxdb")
		}
		var influxdbcfg influxDBPara
		types.MustDecode(subcfg, &influxdbcfg)
		log.Info("StartMetrics with influxdb", "influxdbcfg.Duration", influxdbcfg.Duration,
			"influxdbcfg.URL", influxdbcfg.URL,
			"influxdbcfg.DatabaseName,", influxdbcfg.Database,
			"influxdbcfg.Username", influxdbcfg.Username,
			"influxdbcfg.Namespace", influxdbcfg.Namespace)
		go influxdb.InfluxDB(go_metrics.DefaultRegistry,
			time.Duration(influxdbcfg.Duration),
			influxdbcfg.URL,
			influxdbcfg.Database,
			influxdbcfg.Username,
			influxdbcfg.Password,
			influxdbcfg.Namespace)
	case "log":
		var logcfg logPara
		types.MustDecode(sub[metrics.DataEmitMode], &logcfg)
		d := time.Duration(logcfg.Duration)
		if d <= 0 {
			d = time.Minute
		}
		log.Info("StartMetrics with log", "duration", d)
		go go_metrics.Log(go_metrics.DefaultRegistry, d, logger{})
	default:
		log.Error("startMetrics", "The dataEmitMode set is not supported now ", metrics.DataEmitMode)
		return
	}
}

// logger 将 go-metrics 的输出写入 log15
type logger struct{}

func (logger) Printf(format string, v ...interface{}) {
	log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Namespace prometheus 指标前缀
var Namespace = "rps"

// Collector 提供一组 prometheus 指标的模块
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields 收集结构体中所有 prometheus.Collector 类型的字段
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}

// NewRegistry 包含进程, go runtime, 版本信息以及 go-metrics 默认注册表的 prometheus 注册表
func NewRegistry() (r *prometheus.Registry) {
	r = prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: Namespace,
		}),
		collectors.NewGoCollector(),
		prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "info",
			Help:      "rps information.",
			ConstLabels: prometheus.Labels{
				"version": version.GetVersion(),
			},
		}),
		NewGoMetricsCollector(go_metrics.DefaultRegistry),
	)
	return r
}
