package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

func isqrt(u math.Uint) math.Uint {
	root := new(big.Int).Sqrt(u.BigInt())
	return math.NewUintFromBigInt(root)
}

// CreatePool registers a new pool for (base, quote), deriving its id and
// custody address from the keeper's locator and creating its lp-token.
func (k *Keeper) CreatePool(creator, base, quote, lpTokenID string, cfg types.PoolConfig) (string, []Event, error) {
	if base == "" || quote == "" || base == quote {
		return "", nil, types.ErrInvalidAssetPair
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	poolID, err := k.locator.PoolID(base, quote)
	if err != nil {
		return "", nil, types.ErrInvalidAssetPair.Wrap(err.Error())
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, exists := k.pools[poolID]; exists {
		return "", nil, types.ErrPoolExists
	}
	address, err := k.locator.Address(base, quote)
	if err != nil {
		return "", nil, types.ErrInvalidAssetPair.Wrap(err.Error())
	}
	if err := k.lpToken.Create(lpTokenID); err != nil {
		return "", nil, err
	}

	k.pools[poolID] = newPool(poolID, address, base, quote, lpTokenID, cfg)

	em := newEventEmitter()
	em.emitPoolCreated(creator, poolID, lpTokenID, cfg.TakerFeeRate, cfg.TickSize, cfg.LotSize)
	k.logger.Info("pool created", "pool_id", poolID, "base_asset", base, "quote_asset", quote, "address", address)
	return poolID, em.events, nil
}

// AddLiquidity deposits base and quote into the pool and mints lp units,
// proportional to the pool's existing reserves once it is non-empty, or
// as the integer square root of the product on the first deposit.
func (k *Keeper) AddLiquidity(poolID, provider string, baseAmt, quoteAmt uint64) (uint64, []Event, error) {
	if baseAmt == 0 || quoteAmt == 0 {
		return 0, nil, types.ErrZeroAmount
	}
	var lpUnits uint64
	events, err := k.withPool(poolID, func(p *Pool, em *eventEmitter) error {
		baseReserve := k.custody.Balance(p.Address, p.BaseAsset)
		quoteReserve := k.custody.Balance(p.Address, p.QuoteAsset)
		totalSupply := k.lpToken.TotalIssuance(p.LPToken)

		if err := k.custody.Transfer(p.BaseAsset, provider, p.Address, baseAmt, Preserve); err != nil {
			return err
		}
		if err := k.custody.Transfer(p.QuoteAsset, provider, p.Address, quoteAmt, Preserve); err != nil {
			return err
		}

		if totalSupply == 0 {
			lpUnits = isqrt(math.NewUint(baseAmt).Mul(math.NewUint(quoteAmt))).Uint64()
		} else {
			fromBase := math.NewUint(baseAmt).Mul(math.NewUint(totalSupply)).Quo(math.NewUint(baseReserve))
			fromQuote := math.NewUint(quoteAmt).Mul(math.NewUint(totalSupply)).Quo(math.NewUint(quoteReserve))
			if fromBase.LT(fromQuote) {
				lpUnits = fromBase.Uint64()
			} else {
				lpUnits = fromQuote.Uint64()
			}
		}
		if lpUnits == 0 {
			return types.ErrInsufficientLiquidityMinted
		}
		if err := k.lpToken.MintInto(p.LPToken, provider, lpUnits); err != nil {
			return err
		}
		em.emitLiquidityAdded(provider, p.ID, baseAmt, quoteAmt, p.LPToken, lpUnits)
		return nil
	})
	return lpUnits, events, err
}

// RemoveLiquidity burns lpUnits and withdraws the provider's pro-rata share
// of both reserves, refusing to leave either reserve non-zero but below its
// custody minimum balance.
func (k *Keeper) RemoveLiquidity(poolID, withdrawer string, lpUnits uint64) (uint64, uint64, []Event, error) {
	if lpUnits == 0 {
		return 0, 0, nil, types.ErrZeroAmount
	}
	var baseOut, quoteOut uint64
	events, err := k.withPool(poolID, func(p *Pool, em *eventEmitter) error {
		totalSupply := k.lpToken.TotalIssuance(p.LPToken)
		if totalSupply == 0 {
			return types.ErrZeroLiquidity
		}
		baseReserve := k.custody.Balance(p.Address, p.BaseAsset)
		quoteReserve := k.custody.Balance(p.Address, p.QuoteAsset)

		baseOut = math.NewUint(baseReserve).Mul(math.NewUint(lpUnits)).Quo(math.NewUint(totalSupply)).Uint64()
		quoteOut = math.NewUint(quoteReserve).Mul(math.NewUint(lpUnits)).Quo(math.NewUint(totalSupply)).Uint64()

		if rem := baseReserve - baseOut; rem > 0 && rem < k.custody.MinimumBalance(p.BaseAsset) {
			return types.ErrReserveBelowMinimum
		}
		if rem := quoteReserve - quoteOut; rem > 0 && rem < k.custody.MinimumBalance(p.QuoteAsset) {
			return types.ErrReserveBelowMinimum
		}

		if _, err := k.lpToken.BurnFrom(p.LPToken, withdrawer, lpUnits); err != nil {
			return err
		}
		if _, err := k.custody.Withdraw(p.BaseAsset, p.Address, baseOut, Expendable); err != nil {
			return err
		}
		if err := k.custody.Resolve(withdrawer, p.BaseAsset, baseOut); err != nil {
			return err
		}
		if _, err := k.custody.Withdraw(p.QuoteAsset, p.Address, quoteOut, Expendable); err != nil {
			return err
		}
		if err := k.custody.Resolve(withdrawer, p.QuoteAsset, quoteOut); err != nil {
			return err
		}
		em.emitLiquidityRemoved(withdrawer, p.ID, baseOut, quoteOut, p.LPToken, lpUnits)
		return nil
	})
	return baseOut, quoteOut, events, err
}

// TouchPool provisions account's entry for asset if the custody collaborator
// requires an explicit existential-deposit touch before it can hold a
// balance, charging payer for it. A no-op when the account is already touched.
func (k *Keeper) TouchPool(poolID, asset, account, payer string) error {
	pool, err := k.getPool(poolID)
	if err != nil {
		return err
	}
	if asset != pool.BaseAsset && asset != pool.QuoteAsset {
		return types.ErrInvalidPath
	}
	if k.custody.ShouldTouch(asset, account) {
		return k.custody.Touch(asset, account, payer)
	}
	return nil
}
