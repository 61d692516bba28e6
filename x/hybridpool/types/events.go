package types

const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeLimitOrderPlaced = "limit_order_placed"
	EventTypeOrderMatched     = "order_matched"
	EventTypeOrderCancelled   = "order_cancelled"
	EventTypeSwapExecuted     = "swap_executed"

	AttributeKeyPoolID        = "pool_id"
	AttributeKeyCreator       = "creator"
	AttributeKeyLPToken       = "lp_token"
	AttributeKeyFeeRate       = "fee_rate"
	AttributeKeyTickSize      = "tick_size"
	AttributeKeyLotSize       = "lot_size"
	AttributeKeyProvider      = "provider"
	AttributeKeyBaseAmount    = "base_amount"
	AttributeKeyQuoteAmount   = "quote_amount"
	AttributeKeyLPUnits       = "lp_units"
	AttributeKeyMaker         = "maker"
	AttributeKeyOrderID       = "order_id"
	AttributeKeyPrice         = "price"
	AttributeKeyQuantity      = "quantity"
	AttributeKeySide          = "side"
	AttributeKeyTaker         = "taker"
	AttributeKeyFilledQty     = "filled_qty"
	AttributeKeyOwner         = "owner"
	AttributeKeyAssetIn       = "asset_in"
	AttributeKeyAssetOut      = "asset_out"
	AttributeKeyAmountIn      = "amount_in"
	AttributeKeyAmountOut     = "amount_out"
	AttributeKeyTradeID       = "trade_id"
)
