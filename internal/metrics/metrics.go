// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics declares the Prometheus collectors the blog exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "oblog"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route pattern, method and status code."},
		[]string{"route", "method", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency by route pattern.", Buckets: prometheus.DefBuckets},
		[]string{"route"},
	)
	Comments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "comments_total", Help: "Comment submissions by outcome."},
		[]string{"outcome"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_lookups_total", Help: "Cache lookups by cache name and result."},
		[]string{"cache", "result"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "login_attempts_total", Help: "Login attempts by outcome."},
		[]string{"outcome"},
	)
)

// Comment outcomes.
const (
	CommentCreated  = "created"
	CommentInvalid  = "invalid"
	CommentFailed   = "failed"
	CommentRejected = "rejected"
)

// RegisterCollectors registers every collector with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(Comments)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(LoginAttempts)
}

// CounterValue reads the current value of c. It returns 0 if c cannot be read.
func CounterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
