// Package metrics holds the Prometheus collectors for game activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GamesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobstack_games_started_total",
			Help: "Total number of games created or reset",
		},
	)

	GamesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobstack_games_completed_total",
			Help: "Total number of games that reached game over",
		},
	)

	GamesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobstack_games_active",
			Help: "Number of games currently held in the store",
		},
	)

	RoundsPlayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobstack_rounds_total",
			Help: "Total number of resolved rounds by outcome",
		},
		[]string{"outcome"},
	)

	RoundEarnings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobstack_round_earnings_dollars",
			Help:    "Earnings of resolved rounds, negative for losing offers",
			Buckets: []float64{-5000, -1000, -100, 0, 100, 1000, 5000, 10000, 25000, 50000},
		},
	)
)
