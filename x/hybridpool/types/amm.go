package types

import "cosmossdk.io/math"

// LPFee is a proportional taker fee expressed in tenths of a percent
// (e.g. 3 means 0.3%), deducted from the input side of every AMM swap.
type LPFee uint32

const feeDenominator = 1000

// Quote is the fee-less constant-product spot price: amount * rOut / rIn.
func Quote(amount, rIn, rOut math.Uint) (math.Uint, error) {
	if rIn.IsZero() {
		return math.Uint{}, ErrZeroLiquidity
	}
	return amount.Mul(rOut).Quo(rIn), nil
}

// AmountOut returns the constant-product output for a given input,
// net of the proportional fee, using arithmetic widened to avoid overflow.
func AmountOut(deltaIn, rIn, rOut math.Uint, fee LPFee) (math.Uint, error) {
	if rIn.IsZero() || rOut.IsZero() {
		return math.Uint{}, ErrZeroLiquidity
	}
	feeFactor := math.NewUint(feeDenominator - uint64(fee))
	numerator := deltaIn.Mul(feeFactor).Mul(rOut)
	denominator := rIn.Mul(math.NewUint(feeDenominator)).Add(deltaIn.Mul(feeFactor))
	if denominator.IsZero() {
		return math.Uint{}, ErrZeroLiquidity
	}
	return numerator.Quo(denominator), nil
}

// AmountIn returns the constant-product input required to receive deltaOut,
// net of the proportional fee, rounded up so the pool is never shorted.
func AmountIn(deltaOut, rIn, rOut math.Uint, fee LPFee) (math.Uint, error) {
	if rIn.IsZero() || rOut.IsZero() {
		return math.Uint{}, ErrZeroLiquidity
	}
	if deltaOut.GTE(rOut) {
		return math.Uint{}, ErrAmountOutTooHigh
	}
	feeFactor := math.NewUint(feeDenominator - uint64(fee))
	numerator := rIn.Mul(deltaOut).Mul(math.NewUint(feeDenominator))
	denominator := rOut.Sub(deltaOut).Mul(feeFactor)
	if denominator.IsZero() {
		return math.Uint{}, ErrZeroLiquidity
	}
	return numerator.Quo(denominator).Add(math.OneUint()), nil
}

// NormalizeUint scales v by 10^*adj when adj is non-nil, and returns v
// unchanged otherwise.
func NormalizeUint(v math.Uint, adj *uint8) math.Uint {
	if adj == nil {
		return v
	}
	return v.Mul(Pow10(*adj))
}

// Normalize is NormalizeUint for a raw uint64 magnitude.
func Normalize(v uint64, adj *uint8) math.Uint {
	return NormalizeUint(math.NewUint(v), adj)
}

// Denom divides v by 10^adj, truncating toward zero.
func Denom(v math.Uint, adj uint8) uint64 {
	if adj == 0 {
		return v.Uint64()
	}
	return v.Quo(Pow10(adj)).Uint64()
}

func Pow10(n uint8) math.Uint {
	r := math.OneUint()
	ten := math.NewUint(10)
	for i := uint8(0); i < n; i++ {
		r = r.Mul(ten)
	}
	return r
}
