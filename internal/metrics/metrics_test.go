package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kubev2v/handoff/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	It("should count work by kind and status", func() {
		m.ObserveWork("basic", 10*time.Millisecond, nil)
		m.ObserveWork("basic", 10*time.Millisecond, nil)
		m.ObserveWork("constrained", time.Millisecond, errors.New("boom"))

		Expect(testutil.ToFloat64(m.WorkCompleted.WithLabelValues("basic", metrics.StatusSucceeded))).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.WorkCompleted.WithLabelValues("constrained", metrics.StatusFailed))).To(Equal(1.0))
	})

	It("should expose queue depths at scrape time", func() {
		depth := 3
		Expect(m.TrackQueue("pending", func() int { return depth })).To(Succeed())
		Expect(m.TrackQueue("finished", func() int { return 0 })).To(Succeed())

		depth = 5
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`handoff_queue_depth{queue="pending"} 5`))
		Expect(string(body)).To(ContainSubstring(`handoff_queue_depth{queue="finished"} 0`))
	})

	It("should refuse to track the same queue twice", func() {
		Expect(m.TrackQueue("pending", func() int { return 0 })).To(Succeed())
		Expect(m.TrackQueue("pending", func() int { return 0 })).NotTo(Succeed())
	})
})
