package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spec_trainer_sessions_started_total",
		Help: "Sessions started, by mode.",
	}, []string{"mode"})

	metricRecipesGraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spec_trainer_recipes_graded_total",
		Help: "Recipes graded across all sessions.",
	})

	metricSessionsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spec_trainer_sessions_finished_total",
		Help: "Sessions that reached the report screen.",
	})
)
