package arith

import (
	"math"
	"strconv"
)

// Fraction is an exact rational kept in lowest terms with Den > 0.
type Fraction struct {
	Num int64 `json:"numerator"`
	Den int64 `json:"denominator"`
}

// Int returns n/1.
func Int(n int64) Fraction {
	return Fraction{Num: n, Den: 1}
}

// NewFraction returns num/den reduced. ok is false when den is zero or
// either part is math.MinInt64.
func NewFraction(num, den int64) (Fraction, bool) {
	if den == 0 || num == math.MinInt64 || den == math.MinInt64 {
		return Fraction{}, false
	}
	return reduce(num, den), true
}

// mul64 and add64 refuse math.MinInt64 as a result so that negation and
// absolute values never overflow.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || c == math.MinInt64 {
		return 0, false
	}
	return c, true
}

func add64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) || c == math.MinInt64 {
		return 0, false
	}
	return c, true
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func reduce(num, den int64) Fraction {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(num, den)
	return Fraction{Num: num / g, Den: den / g}
}

// cross returns a*d + sign*b*c over b*d, the shared step of Add and Sub.
func cross(f, g Fraction, sign int64) (Fraction, bool) {
	left, ok := mul64(f.Num, g.Den)
	if !ok {
		return Fraction{}, false
	}
	right, ok := mul64(sign*g.Num, f.Den)
	if !ok {
		return Fraction{}, false
	}
	num, ok := add64(left, right)
	if !ok {
		return Fraction{}, false
	}
	den, ok := mul64(f.Den, g.Den)
	if !ok {
		return Fraction{}, false
	}
	return reduce(num, den), true
}

// Add returns f+g. ok is false when the result does not fit in int64.
func (f Fraction) Add(g Fraction) (Fraction, bool) {
	return cross(f, g, 1)
}

// Sub returns f-g. ok is false when the result does not fit in int64.
func (f Fraction) Sub(g Fraction) (Fraction, bool) {
	return cross(f, g, -1)
}

// Mul returns f*g. ok is false when the result does not fit in int64.
func (f Fraction) Mul(g Fraction) (Fraction, bool) {
	num, ok := mul64(f.Num, g.Num)
	if !ok {
		return Fraction{}, false
	}
	den, ok := mul64(f.Den, g.Den)
	if !ok {
		return Fraction{}, false
	}
	return reduce(num, den), true
}

// Div returns f/g. ok is false when g is zero or the result does not fit
// in int64; check IsZero first to tell the two apart.
func (f Fraction) Div(g Fraction) (Fraction, bool) {
	if g.Num == 0 {
		return Fraction{}, false
	}
	num, ok := mul64(f.Num, g.Den)
	if !ok {
		return Fraction{}, false
	}
	den, ok := mul64(f.Den, g.Num)
	if !ok {
		return Fraction{}, false
	}
	return reduce(num, den), true
}

// Neg returns -f.
func (f Fraction) Neg() Fraction {
	return Fraction{Num: -f.Num, Den: f.Den}
}

// IsZero reports f == 0.
func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// EqualsInt reports f == n exactly.
func (f Fraction) EqualsInt(n int64) bool {
	if f.Den == 0 {
		return false
	}
	want, ok := mul64(n, f.Den)
	return ok && f.Num == want
}

// String formats f as "n" or "n/d".
func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return strconv.FormatInt(f.Num, 10) + "/" + strconv.FormatInt(f.Den, 10)
}
