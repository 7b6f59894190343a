// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influxdb 定时将 go-metrics 的指标写入 influxdb
package influxdb

import (
	"fmt"
	"time"

	log "github.com/33cn/rps/common/log"
	client "github.com/influxdata/influxdb/client/v2"
	"github.com/rcrowley/go-metrics"
)

var ilog = log.New("module", "metrics.influxdb")

type reporter struct {
	reg      metrics.Registry
	interval time.Duration

	url       string
	database  string
	username  string
	password  string
	namespace string
	tags      map[string]string

	client client.Client
}

// InfluxDB 阻塞运行, 每隔 d 发送一次
func InfluxDB(r metrics.Registry, d time.Duration, url, database, username, password, namespace string) {
	InfluxDBWithTags(r, d, url, database, username, password, namespace, nil)
}

// InfluxDBWithTags 同 InfluxDB, 每个点附带 tags
func InfluxDBWithTags(r metrics.Registry, d time.Duration, url, database, username, password, namespace string, tags map[string]string) {
	if d <= 0 {
		d = time.Second
	}
	rep := &reporter{
		reg:       r,
		interval:  d,
		url:       url,
		database:  database,
		username:  username,
		password:  password,
		namespace: namespace,
		tags:      tags,
	}
	if err := rep.makeClient(); err != nil {
		ilog.Warn("Unable to make InfluxDB client", "err", err)
		return
	}
	rep.run()
}

func (r *reporter) makeClient() (err error) {
	r.client, err = client.NewHTTPClient(client.HTTPConfig{
		Addr:     r.url,
		Username: r.username,
		Password: r.password,
		Timeout:  10 * time.Second,
	})
	return
}

func (r *reporter) run() {
	intervalTicker := time.NewTicker(r.interval)
	pingTicker := time.NewTicker(5 * time.Second)
	defer intervalTicker.Stop()
	defer pingTicker.Stop()

	for {
		select {
		case <-intervalTicker.C:
			if err := r.send(); err != nil {
				ilog.Warn("Unable to send to InfluxDB", "err", err)
			}
		case <-pingTicker.C:
			_, _, err := r.client.Ping(0)
			if err != nil {
				ilog.Warn("Got error while sending a ping to InfluxDB, trying to recreate client", "err", err)
				if err = r.makeClient(); err != nil {
					ilog.Warn("Unable to make InfluxDB client", "err", err)
				}
			}
		}
	}
}

func (r *reporter) send() error {
	bps, err := client.NewBatchPoints(client.BatchPointsConfig{Database: r.database})
	if err != nil {
		return err
	}
	for _, pt := range points(r.reg, r.namespace, r.tags, time.Now()) {
		bps.AddPoint(pt)
	}
	return r.client.Write(bps)
}

// points 注册表中所有指标对应的点, 名称为 namespace + 指标名 + 类型
func points(reg metrics.Registry, namespace string, tags map[string]string, now time.Time) []*client.Point {
	var pts []*client.Point
	add := func(name string, fields map[string]interface{}) {
		pt, err := client.NewPoint(namespace+name, tags, fields, now)
		if err != nil {
			ilog.Debug("NewPoint", "name", name, "err", err)
			return
		}
		pts = append(pts, pt)
	}
	reg.Each(func(name string, i interface{}) {
		switch metric := i.(type) {
		case metrics.Counter:
			add(fmt.Sprintf("%s.count", name), map[string]interface{}{
				"value": metric.Count(),
			})
		case metrics.Gauge:
			add(fmt.Sprintf("%s.gauge", name), map[string]interface{}{
				"value": metric.Snapshot().Value(),
			})
		case metrics.GaugeFloat64:
			add(fmt.Sprintf("%s.gauge", name), map[string]interface{}{
				"value": metric.Snapshot().Value(),
			})
		case metrics.Histogram:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.75, 0.95, 0.99})
			add(fmt.Sprintf("%s.histogram", name), map[string]interface{}{
				"count":    ms.Count(),
				"max":      ms.Max(),
				"mean":     ms.Mean(),
				"min":      ms.Min(),
				"stddev":   ms.StdDev(),
				"variance": ms.Variance(),
				"p50":      ps[0],
				"p75":      ps[1],
				"p95":      ps[2],
				"p99":      ps[3],
			})
		case metrics.Meter:
			ms := metric.Snapshot()
			add(fmt.Sprintf("%s.meter", name), map[string]interface{}{
				"count": ms.Count(),
				"m1":    ms.Rate1(),
				"m5":    ms.Rate5(),
				"m15":   ms.Rate15(),
				"mean":  ms.RateMean(),
			})
		case metrics.Timer:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.75, 0.95, 0.99})
			add(fmt.Sprintf("%s.timer", name), map[string]interface{}{
				"count":    ms.Count(),
				"max":      ms.Max(),
				"mean":     ms.Mean(),
				"min":      ms.Min(),
				"stddev":   ms.StdDev(),
				"variance": ms.Variance(),
				"p50":      ps[0],
				"p75":      ps[1],
				"p95":      ps[2],
				"p99":      ps[3],
				"m1":       ms.Rate1(),
				"meanrate": ms.RateMean(),
			})
		}
	})
	return pts
}
