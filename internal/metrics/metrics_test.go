// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	Comments.WithLabelValues(CommentCreated).Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["oblog_comments_total"])
}

func TestRegisterCollectorsTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)
	require.Panics(t, func() { RegisterCollectors(reg) })
}

func TestCounterValue(t *testing.T) {
	c := LoginAttempts.WithLabelValues("test")
	before := CounterValue(c)
	c.Inc()
	c.Inc()
	require.Equal(t, before+2, CounterValue(c))
}
