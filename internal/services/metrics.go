package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookOutcomesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voterlink",
			Name:      "webhook_messages_total",
			Help:      "Inbound WhatsApp webhook deliveries by outcome.",
		},
		[]string{"outcome"}, // ignored, duplicate, blocked, warned, locked_out, link_sent
	)

	linksIssuedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voterlink",
			Name:      "links_issued_total",
			Help:      "Voting link tokens issued.",
		},
		[]string{"source"}, // registration, webhook
	)

	linkVisitsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voterlink",
			Name:      "link_visits_total",
			Help:      "Voting link visits by result.",
		},
		[]string{"result"},
	)

	ballotsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voterlink",
			Name:      "ballot_submissions_total",
			Help:      "Ballot submissions by result.",
		},
		[]string{"result"}, // accepted, duplicate, invalid, unauthorized, error
	)

	outboundFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voterlink",
			Name:      "outbound_failures_total",
			Help:      "Outbound notifications that failed to send.",
		},
		[]string{"channel", "template"},
	)
)
