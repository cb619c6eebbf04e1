package world

import "github.com/prometheus/client_golang/prometheus"

// Метрики мира. Регистрируются в дефолтном регистре при инициализации
// пакета; /metrics отдаёт их через REST-сервер.
var (
	metricChunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockverse",
		Name:      "chunks_generated_total",
		Help:      "Общее число сгенерированных чанков.",
	})

	metricChunkGenDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blockverse",
		Name:      "chunk_generation_duration_seconds",
		Help:      "Длительность генерации одного чанка.",
		Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	})

	metricChunksResident = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "blockverse",
		Name:      "chunks_resident",
		Help:      "Количество чанков, находящихся в памяти.",
	})

	metricTileWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockverse",
		Name:      "tile_writes_total",
		Help:      "Общее число записей тайлов через World.SetTile.",
	})
)

func init() {
	prometheus.MustRegister(
		metricChunksGenerated,
		metricChunkGenDuration,
		metricChunksResident,
		metricTileWrites,
	)
}
