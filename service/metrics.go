package service

import "github.com/prometheus/client_golang/prometheus"

var (
	catalogPhotos = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "foodnote_catalog_photos",
		Help: "Photos in the in-memory catalog",
	})
	catalogNotes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "foodnote_catalog_notes",
		Help: "Notes in the in-memory catalog",
	})
)

func init() {
	prometheus.MustRegister(catalogPhotos, catalogNotes)
}
