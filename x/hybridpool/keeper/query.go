package keeper

import (
	"cosmossdk.io/math"
	"github.com/google/btree"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// PriceLevel is one aggregated row of a depth snapshot.
type PriceLevel struct {
	Price    uint64
	Quantity uint64
}

type priceLevelItem struct{ level PriceLevel }

func (a priceLevelItem) Less(than btree.Item) bool {
	return a.level.Price < than.(priceLevelItem).level.Price
}

// PoolQuery is a point-in-time, read-only view of a pool's reserves, spot
// price, and book depth. It never mutates the crit-bit trees it reads.
type PoolQuery struct {
	BaseReserve  uint64
	QuoteReserve uint64
	SpotPrice    uint64
	Bids         []PriceLevel // descending by price
	Asks         []PriceLevel // ascending by price
}

type PoolMetadata struct {
	TakerFeeRate  types.LPFee
	TickSize      uint64
	LotSize       uint64
	PoolDecimals  uint8
	BaseDecimals  uint8
	QuoteDecimals uint8
}

// levels walks a crit-bit tree in ascending key order and re-indexes it
// into a google/btree snapshot purely so depth can be read out in either
// direction without mutating the matching tree itself.
func levels(t *CritbitTree) *btree.BTree {
	out := btree.New(32)
	key, slot, ok := t.Min()
	for ok {
		tick, _ := t.ValueAt(slot)
		out.ReplaceOrInsert(priceLevelItem{level: PriceLevel{Price: key, Quantity: tick.TotalQuantity()}})
		var nextOK bool
		key, slot, nextOK, _ = t.Next(key)
		ok = nextOK
	}
	return out
}

func (k *Keeper) GetPoolQuery(poolID string) (*PoolQuery, error) {
	pool, err := k.getPool(poolID)
	if err != nil {
		return nil, err
	}
	baseReserve := k.custody.Balance(pool.Address, pool.BaseAsset)
	quoteReserve := k.custody.Balance(pool.Address, pool.QuoteAsset)
	spot, err := pool.Config.SpotPrice(baseReserve, quoteReserve)
	if err != nil && err != types.ErrZeroLiquidity {
		return nil, err
	}

	var bids []PriceLevel
	levels(pool.Bids).Descend(func(it btree.Item) bool {
		bids = append(bids, it.(priceLevelItem).level)
		return true
	})
	var asks []PriceLevel
	levels(pool.Asks).Ascend(func(it btree.Item) bool {
		asks = append(asks, it.(priceLevelItem).level)
		return true
	})

	if k.metrics != nil {
		var bidQty, askQty uint64
		for _, lvl := range bids {
			bidQty += lvl.Quantity
		}
		for _, lvl := range asks {
			askQty += lvl.Quantity
		}
		k.metrics.UpdateDepth(poolID, float64(bidQty), float64(askQty))
		if len(bids) > 0 && len(asks) > 0 && asks[0].Price > bids[0].Price && spot > 0 {
			spreadBps := float64(asks[0].Price-bids[0].Price) * 10_000 / float64(spot)
			k.metrics.UpdateSpread(poolID, spreadBps)
		}
	}

	return &PoolQuery{
		BaseReserve:  baseReserve,
		QuoteReserve: quoteReserve,
		SpotPrice:    spot,
		Bids:         bids,
		Asks:         asks,
	}, nil
}

func (k *Keeper) GetPoolMetadata(poolID string) (*PoolMetadata, error) {
	pool, err := k.getPool(poolID)
	if err != nil {
		return nil, err
	}
	return &PoolMetadata{
		TakerFeeRate:  pool.Config.TakerFeeRate,
		TickSize:      pool.Config.TickSize,
		LotSize:       pool.Config.LotSize,
		PoolDecimals:  pool.Config.PoolDecimals,
		BaseDecimals:  pool.Config.BaseDecimals,
		QuoteDecimals: pool.Config.QuoteDecimals,
	}, nil
}

// QuoteExactIn is a read-only quoter: how much of the pool's other asset
// amountIn of assetIn would currently buy via the AMM leg alone, ignoring
// the book. Supplemented from the original pallet's swap-path quoters.
func (k *Keeper) QuoteExactIn(poolID, assetIn string, amountIn uint64) (uint64, error) {
	pool, err := k.getPool(poolID)
	if err != nil {
		return 0, err
	}
	baseReserve := k.custody.Balance(pool.Address, pool.BaseAsset)
	quoteReserve := k.custody.Balance(pool.Address, pool.QuoteAsset)
	switch assetIn {
	case pool.BaseAsset:
		out, err := types.AmountOut(math.NewUint(amountIn), math.NewUint(baseReserve), math.NewUint(quoteReserve), pool.Config.TakerFeeRate)
		if err != nil {
			return 0, err
		}
		return out.Uint64(), nil
	case pool.QuoteAsset:
		out, err := types.AmountOut(math.NewUint(amountIn), math.NewUint(quoteReserve), math.NewUint(baseReserve), pool.Config.TakerFeeRate)
		if err != nil {
			return 0, err
		}
		return out.Uint64(), nil
	default:
		return 0, types.ErrInvalidPath
	}
}

// QuoteExactOut is the inverse of QuoteExactIn: how much of assetIn it
// would currently take via the AMM leg alone to receive amountOut of the
// other asset.
func (k *Keeper) QuoteExactOut(poolID, assetIn string, amountOut uint64) (uint64, error) {
	pool, err := k.getPool(poolID)
	if err != nil {
		return 0, err
	}
	baseReserve := k.custody.Balance(pool.Address, pool.BaseAsset)
	quoteReserve := k.custody.Balance(pool.Address, pool.QuoteAsset)
	switch assetIn {
	case pool.BaseAsset:
		in, err := types.AmountIn(math.NewUint(amountOut), math.NewUint(baseReserve), math.NewUint(quoteReserve), pool.Config.TakerFeeRate)
		if err != nil {
			return 0, err
		}
		return in.Uint64(), nil
	case pool.QuoteAsset:
		in, err := types.AmountIn(math.NewUint(amountOut), math.NewUint(quoteReserve), math.NewUint(baseReserve), pool.Config.TakerFeeRate)
		if err != nil {
			return 0, err
		}
		return in.Uint64(), nil
	default:
		return 0, types.ErrInvalidPath
	}
}
