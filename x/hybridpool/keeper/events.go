package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// Event is an alias so callers embedding a full chain can hand these
// straight to ctx.EventManager().EmitEvents without a conversion step.
type Event = sdk.Event

type eventEmitter struct {
	events sdk.Events
}

func newEventEmitter() *eventEmitter { return &eventEmitter{} }

func (e *eventEmitter) emit(ev sdk.Event) { e.events = append(e.events, ev) }

func u64s(v uint64) string { return strconv.FormatUint(v, 10) }

func (e *eventEmitter) emitPoolCreated(creator, poolID, lpToken string, fee types.LPFee, tickSize, lotSize uint64) {
	e.emit(sdk.NewEvent(types.EventTypePoolCreated,
		sdk.NewAttribute(types.AttributeKeyCreator, creator),
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyLPToken, lpToken),
		sdk.NewAttribute(types.AttributeKeyFeeRate, u64s(uint64(fee))),
		sdk.NewAttribute(types.AttributeKeyTickSize, u64s(tickSize)),
		sdk.NewAttribute(types.AttributeKeyLotSize, u64s(lotSize)),
	))
}

func (e *eventEmitter) emitLiquidityAdded(provider, poolID string, baseAmt, quoteAmt uint64, lpToken string, lpUnits uint64) {
	e.emit(sdk.NewEvent(types.EventTypeLiquidityAdded,
		sdk.NewAttribute(types.AttributeKeyProvider, provider),
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyBaseAmount, u64s(baseAmt)),
		sdk.NewAttribute(types.AttributeKeyQuoteAmount, u64s(quoteAmt)),
		sdk.NewAttribute(types.AttributeKeyLPToken, lpToken),
		sdk.NewAttribute(types.AttributeKeyLPUnits, u64s(lpUnits)),
	))
}

func (e *eventEmitter) emitLiquidityRemoved(provider, poolID string, baseAmt, quoteAmt uint64, lpToken string, lpUnits uint64) {
	e.emit(sdk.NewEvent(types.EventTypeLiquidityRemoved,
		sdk.NewAttribute(types.AttributeKeyProvider, provider),
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyBaseAmount, u64s(baseAmt)),
		sdk.NewAttribute(types.AttributeKeyQuoteAmount, u64s(quoteAmt)),
		sdk.NewAttribute(types.AttributeKeyLPToken, lpToken),
		sdk.NewAttribute(types.AttributeKeyLPUnits, u64s(lpUnits)),
	))
}

func (e *eventEmitter) emitLimitOrderPlaced(maker, poolID string, id types.OrderID, price, qty uint64, side types.Side) {
	e.emit(sdk.NewEvent(types.EventTypeLimitOrderPlaced,
		sdk.NewAttribute(types.AttributeKeyMaker, maker),
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyOrderID, u64s(uint64(id))),
		sdk.NewAttribute(types.AttributeKeyPrice, u64s(price)),
		sdk.NewAttribute(types.AttributeKeyQuantity, u64s(qty)),
		sdk.NewAttribute(types.AttributeKeySide, side.String()),
	))
}

func (e *eventEmitter) emitOrderMatched(poolID, taker string, side types.Side, filledQty uint64, tradeID string) {
	e.emit(sdk.NewEvent(types.EventTypeOrderMatched,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyTaker, taker),
		sdk.NewAttribute(types.AttributeKeySide, side.String()),
		sdk.NewAttribute(types.AttributeKeyFilledQty, u64s(filledQty)),
		sdk.NewAttribute(types.AttributeKeyTradeID, tradeID),
	))
}

func (e *eventEmitter) emitOrderCancelled(poolID, owner string, id types.OrderID) {
	e.emit(sdk.NewEvent(types.EventTypeOrderCancelled,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyOwner, owner),
		sdk.NewAttribute(types.AttributeKeyOrderID, u64s(uint64(id))),
	))
}

func (e *eventEmitter) emitSwapExecuted(poolID, who, assetIn, assetOut string, amountIn, amountOut uint64) {
	e.emit(sdk.NewEvent(types.EventTypeSwapExecuted,
		sdk.NewAttribute(types.AttributeKeyPoolID, poolID),
		sdk.NewAttribute(types.AttributeKeyOwner, who),
		sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
		sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
		sdk.NewAttribute(types.AttributeKeyAmountIn, u64s(amountIn)),
		sdk.NewAttribute(types.AttributeKeyAmountOut, u64s(amountOut)),
	))
}
