package server_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/handoff/internal/config"
	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/server"
)

const secret = "0123456789abcdef0123456789abcdef"

func sign(key string, method jwt.SigningMethod, expires time.Time) string {
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(key))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Server", func() {
	var (
		cfg     *config.Configuration
		subject string
	)

	newHandler := func() http.Handler {
		m := metrics.NewMetrics()
		m.Delivered.Add(3)

		srv, err := server.NewServer(cfg, m.Handler(), func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) {
				subject = c.GetString("subject")
				c.JSON(http.StatusOK, gin.H{"pong": true})
			})
			router.GET("/boom", func(c *gin.Context) {
				panic("boom")
			})
		})
		Expect(err).NotTo(HaveOccurred())
		return srv.Handler()
	}

	get := func(h http.Handler, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		cfg = config.NewConfigurationWithDefaults()
		subject = ""
	})

	It("should mount handlers under /api/v1", func() {
		h := newHandler()
		Expect(get(h, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))
		Expect(get(h, "/ping", "").Code).To(Equal(http.StatusNotFound))
	})

	It("should expose metrics", func() {
		w := get(newHandler(), "/metrics", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("handoff_work_delivered_total 3"))
	})

	It("should recover from handler panics", func() {
		w := get(newHandler(), "/api/v1/boom", "")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("should refuse to enable auth without a secret", func() {
		cfg.Auth.Enabled = true
		_, err := server.NewServer(cfg, nil, func(*gin.RouterGroup) {})
		Expect(err).To(HaveOccurred())
	})

	Context("with authentication", func() {
		var h http.Handler

		BeforeEach(func() {
			cfg.Auth.Enabled = true
			cfg.Auth.JWTSecret = secret
			h = newHandler()
		})

		It("should reject requests without a token", func() {
			Expect(get(h, "/api/v1/ping", "").Code).To(Equal(http.StatusUnauthorized))
		})

		It("should accept a valid token", func() {
			w := get(h, "/api/v1/ping", sign(secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(subject).To(Equal("tester"))
		})

		DescribeTable("rejects bad tokens",
			func(token func() string) {
				Expect(get(h, "/api/v1/ping", token()).Code).To(Equal(http.StatusUnauthorized))
			},
			Entry("wrong secret", func() string {
				return sign("another-secret-another-secret-xx", jwt.SigningMethodHS256, time.Now().Add(time.Hour))
			}),
			Entry("expired", func() string {
				return sign(secret, jwt.SigningMethodHS256, time.Now().Add(-time.Hour))
			}),
			Entry("other algorithm", func() string {
				return sign(secret, jwt.SigningMethodHS512, time.Now().Add(time.Hour))
			}),
			Entry("garbage", func() string { return "not.a.token" }),
		)

		It("should leave metrics open", func() {
			Expect(get(h, "/metrics", "").Code).To(Equal(http.StatusOK))
		})
	})
})
