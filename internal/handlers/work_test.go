package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/handoff/api/v1"
	"github.com/kubev2v/handoff/internal/config"
	"github.com/kubev2v/handoff/internal/handlers"
	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/services"
)

var _ = Describe("Work handlers", func() {
	var (
		controller *services.Controller
		router     *gin.Engine
	)

	newRouter := func(maxCandidate int, burst int) {
		var err error
		controller, err = services.NewController(
			config.Worker{PollInterval: time.Millisecond, HistorySize: 16},
			config.Work{MaxCandidate: maxCandidate, Contains: "0", Seed: 3},
			metrics.NewMetrics(),
		)
		Expect(err).NotTo(HaveOccurred())

		h := handlers.New(controller, "0", 0.001, burst)
		router = gin.New()
		v1.RegisterHandlers(router.Group("/api/v1"), h)
	}

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		newRouter(1000, 100)
	})

	AfterEach(func() {
		Expect(controller.ShutDown(context.Background())).To(Succeed())
	})

	Context("CreateWork", func() {
		It("should accept an empty body as a default constrained item", func() {
			w := do(http.MethodPost, "/api/v1/work", "")
			Expect(w.Code).To(Equal(http.StatusAccepted))

			var work v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &work)).To(Succeed())
			Expect(work.Id).NotTo(Equal(uuid.Nil))
			Expect(work.Kind).To(Equal(v1.WorkKindConstrained))
			Expect(work.State).To(Equal(v1.WorkStatePending))
			Expect(work.Contains).NotTo(BeNil())
			Expect(*work.Contains).To(Equal("0"))
		})

		// Given a submission accepted at some instant
		// When the 202 body is decoded
		// Then submittedAt is present and matches what a later lookup reports
		It("should report when the item was submitted", func() {
			before := time.Now()
			w := do(http.MethodPost, "/api/v1/work", `{"kind":"basic"}`)
			Expect(w.Code).To(Equal(http.StatusAccepted))

			var accepted v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &accepted)).To(Succeed())
			Expect(accepted.SubmittedAt).NotTo(BeNil())
			Expect(*accepted.SubmittedAt).To(BeTemporally(">=", before.Truncate(time.Millisecond)))

			w = do(http.MethodGet, "/api/v1/work/"+accepted.Id.String(), "")
			Expect(w.Code).To(Equal(http.StatusOK))
			var looked v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &looked)).To(Succeed())
			Expect(looked.SubmittedAt).NotTo(BeNil())
			Expect(*looked.SubmittedAt).To(BeTemporally("==", *accepted.SubmittedAt))
		})

		It("should accept a basic item", func() {
			w := do(http.MethodPost, "/api/v1/work", `{"kind":"basic"}`)
			Expect(w.Code).To(Equal(http.StatusAccepted))

			var work v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &work)).To(Succeed())
			Expect(work.Kind).To(Equal(v1.WorkKindBasic))
			Expect(work.Contains).To(BeNil())
		})

		It("should reject an unknown kind", func() {
			w := do(http.MethodPost, "/api/v1/work", `{"kind":"composite"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			w := do(http.MethodPost, "/api/v1/work", `{"kind":`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject unsatisfiable work", func() {
			newRouter(20, 100)
			w := do(http.MethodPost, "/api/v1/work", `{"contains":"0"}`)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should reject a substring longer than any candidate in constant time", func() {
			start := time.Now()
			w := do(http.MethodPost, "/api/v1/work", `{"contains":"`+strings.Repeat("7", 4096)+`"}`)
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(time.Since(start)).To(BeNumerically("<", 100*time.Millisecond))
		})

		It("should refuse submissions after shutdown", func() {
			Expect(controller.ShutDown(context.Background())).To(Succeed())
			w := do(http.MethodPost, "/api/v1/work", "")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		// Given a limiter with a burst of 2
		// When 3 submissions arrive at once
		// Then the third is refused without being queued
		It("should throttle bursts", func() {
			newRouter(1000, 2)
			Expect(do(http.MethodPost, "/api/v1/work", "").Code).To(Equal(http.StatusAccepted))
			Expect(do(http.MethodPost, "/api/v1/work", "").Code).To(Equal(http.StatusAccepted))
			Expect(do(http.MethodPost, "/api/v1/work", "").Code).To(Equal(http.StatusTooManyRequests))
			Expect(controller.Status().Pending).To(Equal(2))
		})
	})

	Context("GetWork", func() {
		It("should return 400 for a malformed id", func() {
			w := do(http.MethodGet, "/api/v1/work/not-a-uuid", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for an unknown id", func() {
			w := do(http.MethodGet, "/api/v1/work/"+uuid.NewString(), "")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return the completed item once delivered", func() {
			w := do(http.MethodPost, "/api/v1/work", `{"kind":"constrained","contains":"7"}`)
			Expect(w.Code).To(Equal(http.StatusAccepted))
			var submitted v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &submitted)).To(Succeed())

			w = do(http.MethodGet, "/api/v1/work/"+submitted.Id.String(), "")
			Expect(w.Code).To(Equal(http.StatusOK))

			Expect(controller.StartUp()).To(Succeed())
			Eventually(controller.Tick).WithTimeout(5 * time.Second).Should(Equal(1))

			w = do(http.MethodGet, "/api/v1/work/"+submitted.Id.String(), "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var work v1.Work
			Expect(json.Unmarshal(w.Body.Bytes(), &work)).To(Succeed())
			Expect(work.State).To(Equal(v1.WorkStateCompleted))
			Expect(work.Identifier).NotTo(BeNil())
			Expect(*work.Identifier).To(ContainSubstring("7"))
			Expect(work.Attempts).NotTo(BeNil())
			Expect(work.DurationMs).NotTo(BeNil())
		})
	})

	Context("GetStatus", func() {
		It("should report the controller state and queue depths", func() {
			Expect(do(http.MethodPost, "/api/v1/work", "").Code).To(Equal(http.StatusAccepted))

			w := do(http.MethodGet, "/api/v1/status", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var status v1.Status
			Expect(json.Unmarshal(w.Body.Bytes(), &status)).To(Succeed())
			Expect(status.State).To(Equal(v1.ControllerStateStopped))
			Expect(status.Pending).To(Equal(1))
			Expect(status.Delivered).To(BeZero())
		})
	})
})
