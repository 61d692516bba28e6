package types

import "cosmossdk.io/math"

// PoolConfig holds the parameters fixed at pool creation: fee rate, price
// and quantity granularity, and the three decimal exponents used to derive
// the normalization adjustments in DecimalAdjustment.
type PoolConfig struct {
	TakerFeeRate  LPFee
	TickSize      uint64
	LotSize       uint64
	PoolDecimals  uint8
	BaseDecimals  uint8
	QuoteDecimals uint8
}

func (c PoolConfig) Validate() error {
	if c.TickSize == 0 {
		return ErrInvalidPrice.Wrap("tick size must be positive")
	}
	if c.LotSize == 0 {
		return ErrInvalidQuantity.Wrap("lot size must be positive")
	}
	if uint64(c.TakerFeeRate) >= feeDenominator {
		return ErrInvalidQuantity.Wrap("taker fee rate must be below 100%")
	}
	return nil
}

// DecimalAdjustment derives the three pairwise normalization exponents from
// the pool's decimal parameters: the pool-price exponent applies to the
// unit numerator in a spot-price quote, and exactly one of the asset-side
// exponents is non-nil, applied to whichever asset has fewer decimals so
// that base and quote reserves compare on the same scale.
func (c PoolConfig) DecimalAdjustment() (poolAdj, baseAdj, quoteAdj *uint8) {
	if c.PoolDecimals != 0 {
		v := c.PoolDecimals
		poolAdj = &v
	}
	switch {
	case c.BaseDecimals > c.QuoteDecimals:
		v := c.BaseDecimals - c.QuoteDecimals
		quoteAdj = &v
	case c.QuoteDecimals > c.BaseDecimals:
		v := c.QuoteDecimals - c.BaseDecimals
		baseAdj = &v
	}
	return
}

func (c PoolConfig) IsValidPrice(p uint64) bool {
	return p > 0 && p%c.TickSize == 0
}

func (c PoolConfig) IsValidQuantity(q uint64) bool {
	return q > 0 && q%c.LotSize == 0
}

// SpotPrice is quote_reserve * 10^pool_decimals / base_reserve, decimal
// normalized so pools with mismatched base/quote decimals still compare.
func (c PoolConfig) SpotPrice(baseReserve, quoteReserve uint64) (uint64, error) {
	if baseReserve == 0 {
		return 0, ErrZeroLiquidity
	}
	pAdj, bAdj, qAdj := c.DecimalAdjustment()
	one := Normalize(1, pAdj)
	bNorm := Normalize(baseReserve, bAdj)
	qNorm := Normalize(quoteReserve, qAdj)
	price, err := Quote(one, bNorm, qNorm)
	if err != nil {
		return 0, err
	}
	return price.Uint64(), nil
}

// FreezeAmount is floor(price*qty / 10^(pool_adj+quote_adj)), the quote
// amount a resting bid order locks from its maker.
func (c PoolConfig) FreezeAmount(price, qty uint64) uint64 {
	pAdj, _, qAdj := c.DecimalAdjustment()
	adj := derefOr(pAdj, 0) + derefOr(qAdj, 0)
	product := math.NewUint(price).Mul(math.NewUint(qty))
	return Denom(product, adj)
}

func derefOr(v *uint8, def uint8) uint8 {
	if v == nil {
		return def
	}
	return *v
}
