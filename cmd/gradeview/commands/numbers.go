package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gradeview/internal/numeric"
)

const (
	msgInvalidInteger  = "Invalid input. Please enter an integer."
	msgInvalidFactorIn = "Invalid input. Please enter a positive integer greater than 1."
)

var fibCmd = &cobra.Command{
	Use:   "fib [position]",
	Short: "Print the Fibonacci number at a 1-indexed position",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		raw := numberArg(cmd, args, "Enter a positive integer to find the Fibonacci number at that position: ")
		return runFib(out, raw)
	},
}

var primeCmd = &cobra.Command{
	Use:   "prime [n]",
	Short: "Check whether a number is prime",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		raw := numberArg(cmd, args, "Enter a number to check if it's prime: ")
		return runPrime(out, raw)
	},
}

var factorCmd = &cobra.Command{
	Use:   "factor [n]",
	Short: "Print the prime factorization of a number",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		raw := numberArg(cmd, args, "Enter a number to find its prime factors: ")
		return runFactor(out, raw)
	},
}

func init() {
	rootCmd.AddCommand(fibCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(factorCmd)
}

// numberArg returns the first arg, or prompts for it on stdin
func numberArg(cmd *cobra.Command, args []string, prompt string) string {
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}
	return readLine(newLineReader(cmd.InOrStdin()), cmd.OutOrStdout(), prompt)
}

func runFib(out io.Writer, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(out, msgInvalidInteger)
		return nil
	}

	v, err := numeric.Fibonacci(n)
	switch {
	case errors.Is(err, numeric.ErrNonPositive):
		fmt.Fprintf(out, "The Fibonacci number at position %d is: Input must be a positive integer\n", n)
	case errors.Is(err, numeric.ErrOverflow):
		fmt.Fprintf(out, "Position %d is too large (max %d)\n", n, numeric.MaxFibonacciPosition)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "The Fibonacci number at position %d is: %d\n", n, v)
	}
	return nil
}

func runPrime(out io.Writer, raw string) error {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(out, msgInvalidInteger)
		return nil
	}

	if numeric.IsPrime(n) {
		fmt.Fprintf(out, "%d is a prime number.\n", n)
	} else {
		fmt.Fprintf(out, "%d is not a prime number.\n", n)
	}
	return nil
}

func runFactor(out io.Writer, raw string) error {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(out, msgInvalidFactorIn)
		return nil
	}

	factors, err := numeric.PrimeFactors(n)
	if errors.Is(err, numeric.ErrTooSmall) {
		fmt.Fprintln(out, msgInvalidFactorIn)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, numeric.FormatFactorization(n, factors))
	return nil
}
