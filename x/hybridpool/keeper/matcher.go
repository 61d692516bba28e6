package keeper

import (
	"cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/openalpha/hybridbook/metrics"
	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

type settlementEntry struct {
	maker string
	price uint64
	qty   uint64
}

// MarketOrder runs qty of side through the hybrid matcher as a pure taker:
// no resting order is placed for any unfilled remainder, because the AMM
// always absorbs whatever the book could not.
func (k *Keeper) MarketOrder(poolID string, side types.Side, taker string, qty uint64) (uint64, []Event, error) {
	if qty == 0 {
		return 0, nil, types.ErrZeroAmount
	}
	timer := metrics.NewTimer()
	var filled uint64
	events, err := k.withPool(poolID, func(p *Pool, em *eventEmitter) error {
		f, err := k.matchOrder(p, side, taker, qty, em)
		filled = f
		return err
	})
	if k.metrics != nil {
		k.metrics.RecordMatchingLatency(poolID, side.String(), timer.ElapsedMs())
	}
	return filled, events, err
}

// matchOrder is the hybrid matcher: at each iteration it finds the best
// resting price on the opposite book, uses binary search to find the most
// the AMM can absorb before its own price would cross that level, consumes
// that much from the AMM, then sweeps the book at that price in FIFO order.
// It repeats until the taker is filled or the book is empty, at which point
// the AMM absorbs the remainder outright.
func (k *Keeper) matchOrder(p *Pool, side types.Side, taker string, qty uint64, em *eventEmitter) (uint64, error) {
	remaining := qty
	var fills []settlementEntry
	book := oppositeTree(p, side)

	for remaining > 0 {
		var bestPrice, bestSlot uint64
		var haveBest bool
		if side == types.SideBid {
			bestPrice, bestSlot, haveBest = book.Min()
		} else {
			bestPrice, bestSlot, haveBest = book.Max()
		}
		if !haveBest {
			break
		}

		baseReserve := k.custody.Balance(p.Address, p.BaseAsset)
		quoteReserve := k.custody.Balance(p.Address, p.QuoteAsset)
		maxAMMQty, err := k.maxSwapQuantity(p, side, bestPrice, baseReserve, quoteReserve, remaining)
		if err != nil {
			return 0, err
		}
		k.logger.Debug("matcher step", "book_price", bestPrice, "remaining", remaining, "max_amm_qty", maxAMMQty)

		if remaining <= maxAMMQty {
			if err := k.swapAMM(p, side, taker, remaining, em); err != nil {
				return 0, err
			}
			remaining = 0
			break
		}
		if maxAMMQty > 0 {
			if err := k.swapAMM(p, side, taker, maxAMMQty, em); err != nil {
				return 0, err
			}
			remaining -= maxAMMQty
		}

		tick, ok := book.ValueAt(bestSlot)
		if !ok {
			return 0, types.ErrLeafMissing
		}
		tickFills := tick.Fill(remaining)
		var filledAtLevel uint64
		for _, f := range tickFills {
			fills = append(fills, settlementEntry{maker: f.Owner, price: bestPrice, qty: f.Qty})
			filledAtLevel += f.Qty
		}
		remaining -= filledAtLevel
		if tick.IsEmpty() {
			if _, err := book.Remove(bestSlot); err != nil {
				return 0, err
			}
		}
	}

	if remaining > 0 {
		if err := k.swapAMM(p, side, taker, remaining, em); err != nil {
			return 0, err
		}
	}

	if err := k.settle(p, side, taker, fills, em); err != nil {
		return 0, err
	}
	// a fresh trade id correlates this match's OrderMatched event with the
	// per-fill SwapExecuted/settlement events a downstream indexer would
	// otherwise have to reassemble from ordering alone.
	em.emitOrderMatched(p.ID, taker, side, qty, uuid.New().String())
	return qty, nil
}

// maxSwapQuantity binary-searches the largest base quantity the AMM can
// absorb on side before its own post-swap spot price would reach target,
// the resting price the book is about to be swept at. On every iteration
// where the candidate does not overshoot target, it records that candidate
// as the new best regardless of which branch narrowed the search - this is
// a deliberate strengthening of the narrower single-branch update in the
// pallet this matcher is grounded on, see DESIGN.md.
func (k *Keeper) maxSwapQuantity(p *Pool, side types.Side, target, baseReserve, quoteReserve, remaining uint64) (uint64, error) {
	isBid := side == types.SideBid
	pAdj, bAdj, qAdj := p.Config.DecimalAdjustment()

	lo, hi := uint64(0), remaining
	best := uint64(0)
	for lo < hi {
		mid := lo + (hi-lo)/2 + 1
		var spot uint64
		var err error
		if isBid {
			spot, err = k.spotAfterBid(p, mid, baseReserve, quoteReserve, pAdj, bAdj, qAdj)
		} else {
			spot, err = k.spotAfterAsk(p, mid, baseReserve, quoteReserve, pAdj, bAdj, qAdj)
		}
		if err != nil {
			// mid would drain a reserve or otherwise isn't a feasible swap: narrow down.
			if mid == 0 {
				break
			}
			hi = mid - 1
			continue
		}
		if spot == target {
			return mid, nil
		}
		overshoots := (isBid && spot > target) || (!isBid && spot < target)
		if overshoots {
			if mid == 0 {
				break
			}
			hi = mid - 1
		} else {
			best = mid
			lo = mid
		}
	}
	return best, nil
}

func (k *Keeper) spotAfterBid(p *Pool, mid, baseReserve, quoteReserve uint64, pAdj, bAdj, qAdj *uint8) (uint64, error) {
	deltaIn, err := types.AmountIn(math.NewUint(mid), math.NewUint(quoteReserve), math.NewUint(baseReserve), p.Config.TakerFeeRate)
	if err != nil {
		return 0, err
	}
	newBase := types.NormalizeUint(math.NewUint(baseReserve).Sub(math.NewUint(mid)), bAdj)
	newQuote := types.NormalizeUint(math.NewUint(quoteReserve).Add(deltaIn), qAdj)
	price, err := types.Quote(types.Normalize(1, pAdj), newBase, newQuote)
	if err != nil {
		return 0, err
	}
	return price.Uint64(), nil
}

func (k *Keeper) spotAfterAsk(p *Pool, mid, baseReserve, quoteReserve uint64, pAdj, bAdj, qAdj *uint8) (uint64, error) {
	deltaOut, err := types.AmountOut(math.NewUint(mid), math.NewUint(baseReserve), math.NewUint(quoteReserve), p.Config.TakerFeeRate)
	if err != nil {
		return 0, err
	}
	if deltaOut.GTE(math.NewUint(quoteReserve)) {
		return 0, types.ErrAmountOutTooHigh
	}
	newBase := types.NormalizeUint(math.NewUint(baseReserve).Add(math.NewUint(mid)), bAdj)
	newQuote := types.NormalizeUint(math.NewUint(quoteReserve).Sub(deltaOut), qAdj)
	price, err := types.Quote(types.Normalize(1, pAdj), newBase, newQuote)
	if err != nil {
		return 0, err
	}
	return price.Uint64(), nil
}

// swapAMM executes qty base units of AMM liquidity for taker, in the
// direction implied by side, moving funds entirely through the custody
// collaborator.
func (k *Keeper) swapAMM(p *Pool, side types.Side, taker string, qty uint64, em *eventEmitter) error {
	if qty == 0 {
		return nil
	}
	baseReserve := k.custody.Balance(p.Address, p.BaseAsset)
	quoteReserve := k.custody.Balance(p.Address, p.QuoteAsset)

	if side == types.SideBid {
		deltaIn, err := types.AmountIn(math.NewUint(qty), math.NewUint(quoteReserve), math.NewUint(baseReserve), p.Config.TakerFeeRate)
		if err != nil {
			return err
		}
		amountIn := deltaIn.Uint64()
		if err := k.custody.Transfer(p.QuoteAsset, taker, p.Address, amountIn, Preserve); err != nil {
			return err
		}
		if err := k.custody.Transfer(p.BaseAsset, p.Address, taker, qty, Expendable); err != nil {
			return err
		}
		em.emitSwapExecuted(p.ID, taker, p.QuoteAsset, p.BaseAsset, amountIn, qty)
		if k.metrics != nil {
			k.metrics.RecordAMMSwap(p.ID, side.String())
		}
		return nil
	}

	deltaOut, err := types.AmountOut(math.NewUint(qty), math.NewUint(baseReserve), math.NewUint(quoteReserve), p.Config.TakerFeeRate)
	if err != nil {
		return err
	}
	amountOut := deltaOut.Uint64()
	if err := k.custody.Transfer(p.BaseAsset, taker, p.Address, qty, Preserve); err != nil {
		return err
	}
	if err := k.custody.Transfer(p.QuoteAsset, p.Address, taker, amountOut, Expendable); err != nil {
		return err
	}
	em.emitSwapExecuted(p.ID, taker, p.BaseAsset, p.QuoteAsset, qty, amountOut)
	if k.metrics != nil {
		k.metrics.RecordAMMSwap(p.ID, side.String())
	}
	return nil
}

// settle releases each filled maker's frozen collateral and exchanges it
// with the taker, per the freeze convention established in placement.go:
// bid makers freeze quote, ask makers freeze base.
func (k *Keeper) settle(p *Pool, takerSide types.Side, taker string, fills []settlementEntry, em *eventEmitter) error {
	if k.metrics != nil {
		for _, f := range fills {
			k.metrics.RecordTrade(p.ID, float64(f.qty))
		}
	}
	for _, f := range fills {
		releasedQuote := p.Config.FreezeAmount(f.price, f.qty)
		if takerSide == types.SideBid {
			if err := k.custody.FreezeDecrease(p.BaseAsset, FreezeReasonAsk, f.maker, f.qty); err != nil {
				return err
			}
			if err := k.custody.Transfer(p.BaseAsset, f.maker, taker, f.qty, Expendable); err != nil {
				return err
			}
			if err := k.custody.Transfer(p.QuoteAsset, taker, f.maker, releasedQuote, Preserve); err != nil {
				return err
			}
		} else {
			if err := k.custody.FreezeDecrease(p.QuoteAsset, FreezeReasonBid, f.maker, releasedQuote); err != nil {
				return err
			}
			if err := k.custody.Transfer(p.QuoteAsset, f.maker, taker, releasedQuote, Expendable); err != nil {
				return err
			}
			if err := k.custody.Transfer(p.BaseAsset, taker, f.maker, f.qty, Preserve); err != nil {
				return err
			}
		}
	}
	return nil
}
