package keeper

import (
	"github.com/openalpha/hybridbook/metrics"
	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// LimitOrder places a resting order at price for qty, unless price already
// crosses the pool's current spot, in which case it is redirected to the
// matcher as a taker of qty at market and no order is ever recorded.
func (k *Keeper) LimitOrder(poolID string, side types.Side, maker string, price, qty uint64) (*types.OrderID, []Event, error) {
	timer := metrics.NewTimer()
	defer func() {
		if k.metrics != nil {
			k.metrics.RecordOrderLatency(poolID, "place", timer.ElapsedMs())
		}
	}()
	pool, err := k.getPool(poolID)
	if err != nil {
		return nil, nil, err
	}
	if !pool.Config.IsValidPrice(price) {
		return nil, nil, types.ErrInvalidPrice
	}
	if !pool.Config.IsValidQuantity(qty) {
		return nil, nil, types.ErrInvalidQuantity
	}

	baseReserve := k.custody.Balance(pool.Address, pool.BaseAsset)
	quoteReserve := k.custody.Balance(pool.Address, pool.QuoteAsset)
	spot, err := pool.Config.SpotPrice(baseReserve, quoteReserve)
	if err != nil {
		return nil, nil, err
	}

	crosses := (side == types.SideBid && price >= spot) || (side == types.SideAsk && price <= spot)
	if crosses {
		_, events, err := k.MarketOrder(poolID, side, maker, qty)
		return nil, events, err
	}

	var placedID types.OrderID
	events, err := k.withPool(poolID, func(p *Pool, em *eventEmitter) error {
		if side == types.SideBid {
			if err := k.custody.FreezeIncrease(p.QuoteAsset, FreezeReasonBid, maker, p.Config.FreezeAmount(price, qty)); err != nil {
				return err
			}
		} else {
			if err := k.custody.FreezeIncrease(p.BaseAsset, FreezeReasonAsk, maker, qty); err != nil {
				return err
			}
		}

		var orderID types.OrderID
		var allocErr error
		if side == types.SideBid {
			orderID, allocErr = p.IDs.NextBid()
		} else {
			orderID, allocErr = p.IDs.NextAsk()
		}
		if allocErr != nil {
			return allocErr
		}

		tree := sameTree(p, side)
		slot, found, err := tree.Find(price)
		if err != nil {
			return err
		}
		if found {
			tick, _ := tree.ValueAt(slot)
			tick.Place(orderID, maker, qty, 0)
		} else {
			tick := types.NewTick()
			tick.Place(orderID, maker, qty, 0)
			if _, err := tree.Insert(price, tick); err != nil {
				return err
			}
		}

		placedID = orderID
		em.emitLimitOrderPlaced(maker, p.ID, orderID, price, qty, side)
		if k.metrics != nil {
			k.metrics.RecordOrder(p.ID, side.String())
		}
		return nil
	})
	if err != nil {
		return nil, events, err
	}
	return &placedID, events, nil
}

// CancelOrder reduces a resting order's quantity by qty and releases the
// corresponding share of its frozen collateral back to owner. The order's
// side is recovered from its id alone.
func (k *Keeper) CancelOrder(poolID, owner string, price uint64, orderID types.OrderID, qty uint64) ([]Event, error) {
	timer := metrics.NewTimer()
	defer func() {
		if k.metrics != nil {
			k.metrics.RecordOrderLatency(poolID, "cancel", timer.ElapsedMs())
		}
	}()
	return k.withPool(poolID, func(p *Pool, em *eventEmitter) error {
		side := types.SideBid
		asset := p.QuoteAsset
		reason := FreezeReasonBid
		if orderID.IsAsk() {
			side = types.SideAsk
			asset = p.BaseAsset
			reason = FreezeReasonAsk
		}
		tree := sameTree(p, side)

		slot, found, err := tree.Find(price)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrOrderNotFound
		}
		tick, ok := tree.ValueAt(slot)
		if !ok {
			return types.ErrLeafMissing
		}
		if err := tick.Cancel(owner, orderID, qty); err != nil {
			return err
		}

		releaseAmt := qty
		if orderID.IsBid() {
			releaseAmt = p.Config.FreezeAmount(price, qty)
		}
		if err := k.custody.FreezeDecrease(asset, reason, owner, releaseAmt); err != nil {
			return err
		}

		if tick.IsEmpty() {
			if _, err := tree.Remove(slot); err != nil {
				return err
			}
		}
		em.emitOrderCancelled(p.ID, owner, orderID)
		return nil
	})
}
