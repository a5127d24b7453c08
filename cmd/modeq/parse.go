package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/modeq/modeq"
)

// bigEq is a parsed equation with coefficients reduced into [0, n).
type bigEq struct {
	a, b, c, d *big.Int
	n          *big.Int
	quadratic  bool
}

// parseArgs builds an equation from 4 (linear) or 5 (quadratic) positional
// arguments. Coefficients may be negative; underscores between digits are
// accepted in all numbers. The modulus must be at least two and fit in
// 128 bits.
func parseArgs(args []string) (*bigEq, error) {
	coeffs := make([]*big.Int, len(args)-1)
	for i, arg := range args[:len(args)-1] {
		v, err := parseCoeff(arg)
		if err != nil {
			return nil, err
		}
		coeffs[i] = v
	}
	n, err := parseCoeff(args[len(args)-1])
	if err != nil {
		return nil, err
	}
	if n.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("modulus %s must be at least two", n)
	}
	if n.BitLen() > 128 {
		return nil, fmt.Errorf("modulus %s: %w", n, modeq.ErrOverflow)
	}
	for i, v := range coeffs {
		coeffs[i] = v.Mod(v, n)
	}

	eq := &bigEq{a: coeffs[0], b: coeffs[1], c: coeffs[2], n: n}
	if len(args) == 5 {
		eq.d = coeffs[3]
		eq.quadratic = true
	}
	return eq, nil
}

// parseCoeff parses a possibly negative base-ten integer, ignoring
// underscore digit separators.
func parseCoeff(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "_") || strings.HasPrefix(s, "-_") || strings.HasSuffix(s, "_") {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	v, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
