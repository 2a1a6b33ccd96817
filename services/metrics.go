package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sustainability_predictions_logged_total",
		Help: "Total number of predictions stored, by model type.",
	}, []string{"model_type"})
	trainingStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sustainability_training_started_total",
		Help: "Total number of simulated training runs started.",
	}, []string{"model_type"})
	trainingCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sustainability_training_completed_total",
		Help: "Total number of simulated training runs that reached trained.",
	}, []string{"model_type"})
	trainingFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sustainability_training_failed_total",
		Help: "Total number of training completions that could not be stored.",
	}, []string{"model_type"})
	batchRowsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sustainability_batch_rows_scored_total",
		Help: "Total number of batch rows scored.",
	})
	batchRowsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sustainability_batch_rows_failed_total",
		Help: "Total number of batch rows that could not be scored.",
	})
)
