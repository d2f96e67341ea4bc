package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics tracks the domain counters the storefront cares about.
type StorefrontMetrics struct {
	orders     prometheus.Counter
	contacts   prometheus.Counter
	emailSent  *prometheus.CounterVec
	emailFail  *prometheus.CounterVec
	cacheHits  *prometheus.CounterVec
	cacheMiss  *prometheus.CounterVec
	cachePurge prometheus.Counter
}

// NewStorefrontMetrics registers the domain metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Accepted order submissions.",
	})
	contacts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_messages_total",
		Help: "Accepted contact form submissions.",
	})
	emailSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Transactional emails delivered, by kind.",
	}, []string{"kind"})
	emailFail := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_failed_total",
		Help: "Transactional email delivery failures, by kind.",
	}, []string{"kind"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Catalog cache hits, by entity.",
	}, []string{"entity"})
	cacheMiss := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Catalog cache misses, by entity.",
	}, []string{"entity"})
	cachePurge := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_purges_total",
		Help: "Cache purges triggered by the content webhook.",
	})
	reg.MustRegister(orders, contacts, emailSent, emailFail, cacheHits, cacheMiss, cachePurge)
	return &StorefrontMetrics{
		orders:     orders,
		contacts:   contacts,
		emailSent:  emailSent,
		emailFail:  emailFail,
		cacheHits:  cacheHits,
		cacheMiss:  cacheMiss,
		cachePurge: cachePurge,
	}
}

// IncOrderSubmitted increments the accepted order counter.
func (m *StorefrontMetrics) IncOrderSubmitted() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
}

// IncContactSubmitted increments the accepted contact counter.
func (m *StorefrontMetrics) IncContactSubmitted() {
	if m == nil || m.contacts == nil {
		return
	}
	m.contacts.Inc()
}

// IncEmailSent records a delivered email of the given kind.
func (m *StorefrontMetrics) IncEmailSent(kind string) {
	if m == nil || m.emailSent == nil {
		return
	}
	m.emailSent.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncEmailFailed records a failed email of the given kind.
func (m *StorefrontMetrics) IncEmailFailed(kind string) {
	if m == nil || m.emailFail == nil {
		return
	}
	m.emailFail.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCacheHit records a catalog cache hit for the entity.
func (m *StorefrontMetrics) IncCacheHit(entity string) {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncCacheMiss records a catalog cache miss for the entity.
func (m *StorefrontMetrics) IncCacheMiss(entity string) {
	if m == nil || m.cacheMiss == nil {
		return
	}
	m.cacheMiss.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncCachePurge records one webhook-triggered purge.
func (m *StorefrontMetrics) IncCachePurge() {
	if m == nil || m.cachePurge == nil {
		return
	}
	m.cachePurge.Inc()
}
