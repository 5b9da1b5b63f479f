package primes

import (
	"math/rand/v2"
	"strconv"
	"strings"

	srvErrors "github.com/kubev2v/handoff/pkg/errors"
)

// IsPrime tests n by trial division, walking down from n-1 to 2.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := n - 1; d > 1; d-- {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func isPrimeFast(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Verdict is the answer of a bounded satisfiability check.
type Verdict int

const (
	Unknown Verdict = iota
	Satisfied
	Unsatisfied
)

// Check reports whether some prime in [2, max) contains substr. Only numbers
// that contain substr are visited, so long substrings are decided almost at
// once. At most budget of them are tested for primality, 0 meaning no limit;
// Unknown is returned when the budget runs out first. A substr that is not a
// decimal digit string, or has more digits than max-1, is Unsatisfied in O(1).
func Check(max int, substr string, budget int) Verdict {
	if max <= 2 {
		return Unsatisfied
	}
	if substr == "" {
		return Satisfied
	}

	top := len(strconv.Itoa(max - 1))
	if len(substr) > top {
		return Unsatisfied
	}
	sub := 0
	for i := 0; i < len(substr); i++ {
		if substr[i] < '0' || substr[i] > '9' {
			return Unsatisfied
		}
		sub = sub*10 + int(substr[i]-'0')
	}

	tested := 0
	for digits := top; digits >= len(substr); digits-- {
		// a digits before the substring, b after it
		for a := 0; a+len(substr) <= digits; a++ {
			b := digits - a - len(substr)
			if a == 0 && substr[0] == '0' && digits > 1 {
				continue
			}

			lo, hi := 0, 1
			if a > 0 {
				lo, hi = pow10(a-1), pow10(a)
			}
			shift, tail := pow10(len(substr)+b), pow10(b)

			for prefix := lo; prefix < hi; prefix++ {
				if prefix > (max-1)/shift {
					break
				}
				base := prefix*shift + sub*tail
				if base >= max {
					break
				}
				for suffix := 0; suffix < tail; suffix++ {
					n := base + suffix
					if n >= max {
						break
					}
					if budget > 0 && tested >= budget {
						return Unknown
					}
					tested++
					if isPrimeFast(n) {
						return Satisfied
					}
				}
			}
		}
	}
	return Unsatisfied
}

// Satisfiable is Check without a budget.
func Satisfiable(max int, substr string) bool {
	return Check(max, substr, 0) == Satisfied
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// Searcher draws random candidates in [2, max) until it finds an acceptable prime.
// A limit of 0 means no attempt ceiling: with an unsatisfiable range the search
// never returns.
type Searcher struct {
	rng      *rand.Rand
	max      int
	limit    int
	attempts int

	// OnCandidate is called after every draw with the candidate and its primality.
	OnCandidate func(n int, prime bool)
}

func NewSearcher(rng *rand.Rand, max, limit int) *Searcher {
	return &Searcher{rng: rng, max: max, limit: limit}
}

// Attempts returns the number of candidates drawn so far.
func (s *Searcher) Attempts() int {
	return s.attempts
}

// Find returns a random prime below max.
func (s *Searcher) Find() (int, error) {
	if s.max <= 2 {
		return 0, srvErrors.NewUnsatisfiableWorkError(s.max, "")
	}

	for {
		if s.limit > 0 && s.attempts >= s.limit {
			return 0, srvErrors.NewAttemptsExhaustedError(s.attempts)
		}

		n := 2 + s.rng.IntN(s.max-2)
		s.attempts++

		prime := IsPrime(n)
		if s.OnCandidate != nil {
			s.OnCandidate(n, prime)
		}
		if prime {
			return n, nil
		}
	}
}

// FindContaining repeats Find until the decimal form of the prime contains substr.
// Attempts accumulate across the repetitions and share the same ceiling.
func (s *Searcher) FindContaining(substr string) (int, error) {
	for {
		n, err := s.Find()
		if err != nil {
			return 0, err
		}
		if strings.Contains(strconv.Itoa(n), substr) {
			return n, nil
		}
	}
}
