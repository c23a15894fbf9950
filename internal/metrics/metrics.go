package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ballot_api_requests_total",
		Help: "API requests by route and status code",
	}, []string{"route", "code"})

	ScoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ballot_score_duration_seconds",
		Help:    "Scoring latency per request kind",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"kind"})

	BallotsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ballot_ballots_scored_total",
		Help: "Ballots scored, split by whether labels were available",
	}, []string{"labelled"})

	LinesScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ballot_lines_scored_total",
		Help: "Ballot lines scored",
	})

	LastCER = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ballot_last_cer",
		Help: "Character error rate of the latest scored dataset",
	}, []string{"dataset"})

	LastLineAccuracy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ballot_last_line_accuracy",
		Help: "Joint line accuracy of the latest scored dataset",
	}, []string{"dataset"})
)

// BallotObserver feeds runner progress into the ballot counters.
type BallotObserver struct{}

func (BallotObserver) BallotScored(_ string, labelled bool, lines int) {
	if labelled {
		BallotsScored.WithLabelValues("true").Inc()
	} else {
		BallotsScored.WithLabelValues("false").Inc()
	}
	LinesScored.Add(float64(lines))
}

// ObserveDataset records the headline rates of a finished dataset.
func ObserveDataset(name string, cer, lineAccuracy float64) {
	LastCER.WithLabelValues(name).Set(cer)
	LastLineAccuracy.WithLabelValues(name).Set(lineAccuracy)
}
