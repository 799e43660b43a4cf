// Package numeric holds the number exercises: Fibonacci, primality and
// prime factorization.
package numeric

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNonPositive is returned when a position must be >= 1
	ErrNonPositive = errors.New("input must be a positive integer")
	// ErrTooSmall is returned when factorizing a number below 2
	ErrTooSmall = errors.New("input must be an integer greater than 1")
	// ErrOverflow is returned when the result does not fit in a uint64
	ErrOverflow = errors.New("result does not fit in 64 bits")
)

// MaxFibonacciPosition is the last position whose value fits in a uint64
const MaxFibonacciPosition = 94

// Fibonacci returns the number at 1-indexed position n of the sequence
// 0, 1, 1, 2, 3, 5, ...
func Fibonacci(n int) (uint64, error) {
	if n <= 0 {
		return 0, ErrNonPositive
	}
	if n > MaxFibonacciPosition {
		return 0, ErrOverflow
	}

	var a, b uint64 = 0, 1
	for i := 1; i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

// IsPrime reports whether n is prime, by trial division up to √n
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	// i <= n/i avoids overflowing i*i near MaxInt64
	for i := int64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// PrimeFactors returns the prime factors of n in ascending order, with
// repetition
func PrimeFactors(n int64) ([]int64, error) {
	if n < 2 {
		return nil, ErrTooSmall
	}

	var factors []int64
	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}
	for d := int64(3); d <= n/d; d += 2 {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors, nil
}

// FormatFactorization renders "24 = 2 * 2 * 2 * 3"
func FormatFactorization(n int64, factors []int64) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = strconv.FormatInt(f, 10)
	}
	return strconv.FormatInt(n, 10) + " = " + strings.Join(parts, " * ")
}
