// Package primes contains the computation run by the background worker:
// a random search for a prime below a configured maximum, optionally constrained
// to primes whose decimal form contains a given substring.
//
// Candidates are drawn uniformly in [2, max) and tested by trial division from
// the candidate down to 2. The constrained search repeats the plain search until
// the accepted prime has the required substring. Neither loop is bounded unless
// an attempt ceiling is configured, so termination is probabilistic: for a range
// that holds no acceptable prime the search never returns. Check answers that
// question up front, within a budget, and should be consulted before submitting
// constrained work.
package primes
