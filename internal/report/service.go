package report

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Options configures a Service.
type Options struct {
	// SubscriberBuffer is the per-subscription event buffer.
	SubscriberBuffer int
}

// Service owns the latest report and the viewers subscribed to changes.
// Create one at process start, hand it to the serving layer and Close it at
// shutdown.
type Service struct {
	store    *Store
	registry *Registry
	metrics  *Metrics
	logger   *log.Logger

	// writeMu serialises submissions so that a store commit and its
	// broadcast are never interleaved with another submission.
	writeMu sync.Mutex
}

// NewService creates a Service. metrics may be nil.
func NewService(logger *log.Logger, metrics *Metrics, opts Options) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		store:   NewStore(),
		metrics: metrics,
		logger:  logger,
	}
	s.registry = NewRegistry(opts.SubscriberBuffer, func(n int) {
		metrics.subscribers.Set(float64(n))
	})
	return s
}

// Submit validates payload and, if valid, makes it the latest report and
// notifies every subscriber. The store is updated before any notification
// is queued, so a subscriber that re-fetches always sees the new report.
// Invalid payloads leave the store untouched and notify nobody.
func (s *Service) Submit(payload []byte) (*Report, error) {
	r, err := Parse(payload)
	if err != nil {
		s.metrics.submissions.WithLabelValues("rejected").Inc()
		s.logger.Debug("report rejected", "err", err)
		return nil, err
	}

	s.writeMu.Lock()
	s.store.Set(r)
	delivered, coalesced := s.registry.Broadcast(UpdateEvent)
	s.writeMu.Unlock()

	s.metrics.submissions.WithLabelValues("accepted").Inc()
	s.metrics.broadcasts.Add(float64(delivered))
	s.metrics.coalesced.Add(float64(coalesced))
	s.logger.Info("report accepted",
		"project", r.ProjectName,
		"nodes", len(r.Dependencies.Nodes),
		"links", len(r.Dependencies.Links),
		"notified", delivered+coalesced,
	)
	return r, nil
}

// Current returns the latest report or nil.
func (s *Service) Current() *Report {
	return s.store.Get()
}

// Clear discards the latest report. It never fails and does not notify.
func (s *Service) Clear() {
	s.writeMu.Lock()
	s.store.Clear()
	s.writeMu.Unlock()
	s.metrics.clears.Inc()
	s.logger.Info("report cleared")
}

// Subscribe registers a new viewer. The caller must Close the returned
// subscription when the viewer goes away.
func (s *Service) Subscribe() *Subscription {
	sub := s.registry.Add()
	s.logger.Debug("subscriber connected", "id", sub.ID, "total", s.registry.Len())
	return sub
}

// Subscribers returns the number of connected viewers.
func (s *Service) Subscribers() int {
	return s.registry.Len()
}

// Close disconnects every subscriber. The report is left in place.
func (s *Service) Close() {
	s.registry.CloseAll()
}
