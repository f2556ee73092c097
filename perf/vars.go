package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	RoundLatency       = metric.NewHistogram("1m1s")
	AdvertisementsSent = metric.NewCounter("10s1s")
	CellsRelaxed       = metric.NewCounter("10s1s")
	Rounds             = metric.NewCounter("10s1s")
	TopologyEdits      = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("dvsim:RoundLatency (µs)", RoundLatency)
	expvar.Publish("dvsim:Advertisements/s", AdvertisementsSent)
	expvar.Publish("dvsim:CellsRelaxed/s", CellsRelaxed)
	expvar.Publish("dvsim:Rounds/s", Rounds)
	expvar.Publish("dvsim:TopologyEdits/s", TopologyEdits)
}
