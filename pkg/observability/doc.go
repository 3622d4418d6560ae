/*
Package observability reports what codecs do.

Hooks receive one Event per load or dump. Metrics turns those events into
Prometheus counters and histograms:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	codec := mold.New(person, mold.WithHooks(m.Hooks()))
*/
package observability
