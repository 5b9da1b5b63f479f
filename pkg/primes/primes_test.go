package primes_test

import (
	"math/rand/v2"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/handoff/internal/models"
	srvErrors "github.com/kubev2v/handoff/pkg/errors"
	"github.com/kubev2v/handoff/pkg/primes"
)

func hasDivisor(n int) bool {
	for d := 2; d < n; d++ {
		if n%d == 0 {
			return true
		}
	}
	return false
}

var _ = Describe("IsPrime", func() {
	DescribeTable("classifies small numbers",
		func(n int, expected bool) {
			Expect(primes.IsPrime(n)).To(Equal(expected))
		},
		Entry("negative", -7, false),
		Entry("zero", 0, false),
		Entry("one", 1, false),
		Entry("two", 2, true),
		Entry("three", 3, true),
		Entry("four", 4, false),
		Entry("101", 101, true),
		Entry("561 carmichael", 561, false),
		Entry("7919", 7919, true),
	)
})

var _ = Describe("Satisfiable", func() {
	It("should find no prime containing 0 below 20", func() {
		Expect(primes.Satisfiable(20, "0")).To(BeFalse())
	})

	It("should find 101 below 102", func() {
		Expect(primes.Satisfiable(102, "0")).To(BeTrue())
		Expect(primes.Satisfiable(101, "0")).To(BeFalse())
	})

	It("should accept any prime for an empty substring", func() {
		Expect(primes.Satisfiable(3, "")).To(BeTrue())
		Expect(primes.Satisfiable(2, "")).To(BeFalse())
	})
})

var _ = Describe("Check", func() {
	DescribeTable("decides without a budget",
		func(max int, substr string, expected primes.Verdict) {
			Expect(primes.Check(max, substr, 0)).To(Equal(expected))
		},
		Entry("range too small", 2, "2", primes.Unsatisfied),
		Entry("single digit prime", 10, "7", primes.Satisfied),
		Entry("leading zero", 10000000, "0000000", primes.Unsatisfied),
		Entry("longer than any candidate", 10000000, "12345678", primes.Unsatisfied),
		Entry("only composite holders", 10000000, "4444444", primes.Unsatisfied),
		Entry("prime at the top", 1000000, "999983", primes.Satisfied),
		Entry("not digits", 1000, "1a", primes.Unsatisfied),
		Entry("sign", 1000, "+7", primes.Unsatisfied),
	)

	// Given candidates 100, 101, ... holding "0" below 1000
	// When the budget allows only the first of them
	// Then the check gives up instead of deciding
	It("should give up when the budget runs out", func() {
		Expect(primes.Check(1000, "0", 1)).To(Equal(primes.Unknown))
		Expect(primes.Check(1000, "0", 2)).To(Equal(primes.Satisfied))
	})

	It("should agree with a full scan", func() {
		for _, max := range []int{3, 20, 101, 102, 1000, 5000} {
			for _, substr := range []string{"", "0", "1", "7", "00", "11", "97", "123", "999"} {
				expected := false
				for n := 2; n < max; n++ {
					if strings.Contains(strconv.Itoa(n), substr) && !hasDivisor(n) {
						expected = true
						break
					}
				}
				Expect(primes.Satisfiable(max, substr)).To(Equal(expected), "max %d substr %q", max, substr)
			}
		}
	})
})

var _ = Describe("Searcher", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewPCG(42, 1024))
	})

	It("should return primes below max", func() {
		s := primes.NewSearcher(rng, 100000, 0)
		for range 20 {
			n, err := s.Find()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeNumerically(">=", 2))
			Expect(n).To(BeNumerically("<", 100000))
			Expect(hasDivisor(n)).To(BeFalse())
		}
		Expect(s.Attempts()).To(BeNumerically(">=", 20))
	})

	It("should report every candidate to the hook", func() {
		s := primes.NewSearcher(rng, 1000, 0)
		var seen []int
		var lastPrime bool
		s.OnCandidate = func(n int, prime bool) {
			seen = append(seen, n)
			lastPrime = prime
		}

		n, err := s.Find()
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(s.Attempts()))
		Expect(seen[len(seen)-1]).To(Equal(n))
		Expect(lastPrime).To(BeTrue())
	})

	It("should return primes containing the substring", func() {
		s := primes.NewSearcher(rng, 100000, 0)
		for range 10 {
			n, err := s.FindContaining("0")
			Expect(err).NotTo(HaveOccurred())
			Expect(strconv.Itoa(n)).To(ContainSubstring("0"))
			Expect(hasDivisor(n)).To(BeFalse())
		}
	})

	It("should produce the same sequence for the same seed", func() {
		a := primes.NewSearcher(rand.New(rand.NewPCG(7, 7)), 50000, 0)
		b := primes.NewSearcher(rand.New(rand.NewPCG(7, 7)), 50000, 0)
		for range 5 {
			x, err := a.Find()
			Expect(err).NotTo(HaveOccurred())
			y, err := b.Find()
			Expect(err).NotTo(HaveOccurred())
			Expect(x).To(Equal(y))
		}
	})

	Context("degenerate ranges", func() {
		It("should reject a range without candidates", func() {
			_, err := primes.NewSearcher(rng, 2, 0).Find()
			Expect(srvErrors.IsUnsatisfiableWorkError(err)).To(BeTrue())
		})

		// Given max 20 and substring "0", which no prime satisfies
		// When searching with an attempt ceiling
		// Then the search stops with AttemptsExhaustedError instead of looping forever
		It("should stop at the attempt ceiling", func() {
			s := primes.NewSearcher(rng, 20, 500)
			_, err := s.FindContaining("0")
			Expect(srvErrors.IsAttemptsExhaustedError(err)).To(BeTrue())
			Expect(s.Attempts()).To(Equal(500))
		})
	})
})

var _ = Describe("Executor", func() {
	It("should fill a basic item with a prime identifier", func() {
		e := primes.NewExecutor(100000, 0, 1)
		item := models.NewBasicWorkItem()

		Expect(e.Execute(item)).To(Succeed())

		n, err := strconv.Atoi(item.Identifier)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">=", 2))
		Expect(hasDivisor(n)).To(BeFalse())
		Expect(item.IsPrime).To(BeTrue())
		Expect(item.Input).To(Equal(n))
		Expect(item.Attempts).To(BeNumerically(">=", 1))
	})

	It("should fill a constrained item with a prime containing the substring", func() {
		e := primes.NewExecutor(100000, 0, 2)
		item := models.NewConstrainedWorkItem("0")

		Expect(e.Execute(item)).To(Succeed())

		Expect(strings.Contains(item.Identifier, "0")).To(BeTrue())
		n, err := strconv.Atoi(item.Identifier)
		Expect(err).NotTo(HaveOccurred())
		Expect(hasDivisor(n)).To(BeFalse())
	})

	It("should leave the identifier empty when the ceiling is hit", func() {
		e := primes.NewExecutor(20, 100, 3)
		item := models.NewConstrainedWorkItem("0")

		err := e.Execute(item)
		Expect(srvErrors.IsAttemptsExhaustedError(err)).To(BeTrue())
		Expect(item.Identifier).To(BeEmpty())
		Expect(item.Attempts).To(Equal(100))
	})
})
