package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "emailbuilder", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "emailbuilder", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// TemplateSaves counts save attempts by result: ok|invalid|error.
	TemplateSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "emailbuilder", Name: "template_saves_total", Help: "Template save attempts by result."},
		[]string{"result"},
	)
	// TemplateRenders counts renders by kind (download|preview) and result.
	TemplateRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "emailbuilder", Name: "template_renders_total", Help: "Template renders by kind and result."},
		[]string{"kind", "result"},
	)
	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "emailbuilder", Name: "template_render_seconds", Help: "Layout execution time.", Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10)},
		[]string{"kind"},
	)
	ArchiveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "emailbuilder", Name: "render_archive_failures_total", Help: "Rendered templates that could not be archived to object storage."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(TemplateSaves)
	reg.MustRegister(TemplateRenders)
	reg.MustRegister(RenderDuration)
	reg.MustRegister(ArchiveFailures)
}
