package numtheory

import "math/big"

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// GCD returns the greatest common divisor of the non-negative integers a and b.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	t := new(big.Int)
	for y.Sign() != 0 {
		t.Mod(x, y)
		x, y, t = y, t, x
	}
	return x
}

// ModInverse returns i such that (a*i) mod n == 1, normalized into [0, n).
// The boolean is false when a has no inverse modulo n.
func ModInverse(a, n *big.Int) (*big.Int, bool) {
	if n.Cmp(one) <= 0 {
		return nil, false
	}

	r := new(big.Int).Set(n)
	rr := new(big.Int).Set(a)
	if rr.Sign() < 0 {
		rr.Mod(rr, n)
	}
	t := new(big.Int)
	tt := big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for rr.Sign() != 0 {
		q.Div(r, rr)

		tmp.Mul(q, rr)
		r, rr = rr, new(big.Int).Sub(r, tmp)

		tmp.Mul(q, tt)
		t, tt = tt, new(big.Int).Sub(t, tmp)
	}

	if r.Cmp(one) > 0 {
		return nil, false
	}
	if t.Sign() < 0 {
		t.Add(t, n)
	}
	return t, true
}

// PowMod returns base^exponent mod modulus using right-to-left binary
// exponentiation. exponent must be non-negative; exponent 0 yields 1.
func PowMod(base, exponent, modulus *big.Int) *big.Int {
	if exponent.Sign() < 0 {
		panic("numtheory: negative exponent")
	}

	v := big.NewInt(1)
	p := new(big.Int).Set(base)
	d := new(big.Int).Set(exponent)
	for d.Sign() > 0 {
		if d.Bit(0) == 1 {
			v.Mul(v, p)
			v.Mod(v, modulus)
		}
		p.Mul(p, p)
		p.Mod(p, modulus)
		d.Rsh(d, 1)
	}
	return v
}
