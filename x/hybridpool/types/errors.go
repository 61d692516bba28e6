package types

import "cosmossdk.io/errors"

// ModuleName is the error-registry namespace for this module's codespace.
const ModuleName = "hybridpool"

var (
	// Validation
	ErrInvalidAssetPair = errors.Register(ModuleName, 2, "invalid asset pair")
	ErrInvalidPrice     = errors.Register(ModuleName, 3, "price is not a positive multiple of the tick size")
	ErrInvalidQuantity  = errors.Register(ModuleName, 4, "quantity is not a positive multiple of the lot size")
	ErrZeroAmount       = errors.Register(ModuleName, 5, "amount must be positive")
	ErrInvalidPath       = errors.Register(ModuleName, 6, "asset is not part of this pool's pair")

	// State
	ErrPoolNotFound  = errors.Register(ModuleName, 10, "pool not found")
	ErrPoolExists    = errors.Register(ModuleName, 11, "pool already exists for this asset pair")
	ErrOrderNotFound = errors.Register(ModuleName, 12, "order not found at this price level")
	ErrNoPermission  = errors.Register(ModuleName, 13, "caller does not own this order")
	ErrOverQuantity  = errors.Register(ModuleName, 14, "cancel quantity exceeds the order's remaining quantity")

	// Liquidity
	ErrZeroLiquidity               = errors.Register(ModuleName, 20, "pool has zero reserves")
	ErrReserveBelowMinimum         = errors.Register(ModuleName, 21, "withdrawal would leave a reserve below its minimum balance")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 22, "deposit mints zero lp units")
	ErrBelowMinimumBalance         = errors.Register(ModuleName, 23, "account balance insufficient or would fall below minimum")
	ErrAmountOutTooHigh            = errors.Register(ModuleName, 24, "requested amount out meets or exceeds the reserve")

	// Capacity / arithmetic
	ErrExceedCapacity     = errors.Register(ModuleName, 30, "crit-bit tree leaf capacity exhausted")
	ErrOverflow           = errors.Register(ModuleName, 31, "internal node or order id index space exhausted")
	ErrArithmeticOverflow = errors.Register(ModuleName, 32, "arithmetic overflow or underflow")

	// Invariant violations: these indicate a bug in the tree, not bad input.
	ErrInternalNodeMissing = errors.Register(ModuleName, 40, "internal node referenced by a child or root pointer is missing")
	ErrLeafMissing         = errors.Register(ModuleName, 41, "leaf referenced by a parent pointer is missing")

	// Tree-specific, mirrors the CritbitTreeError taxonomy this package is grounded on.
	ErrAlreadyExist = errors.Register(ModuleName, 50, "key already exists in the tree")
	ErrTreeNotFound = errors.Register(ModuleName, 51, "key not found in the tree")
)
