package keeper

import (
	"sync"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// LPToken is the external collaborator responsible for minting and burning
// a pool's liquidity-provider shares. This module decides how many units
// to mint or burn; the collaborator owns the registry.
type LPToken interface {
	Create(tokenID string) error
	MintInto(tokenID, account string, amount uint64) error
	BurnFrom(tokenID, account string, amount uint64) (uint64, error)
	TotalIssuance(tokenID string) uint64
	Balance(tokenID, account string) uint64
}

// MemLPToken is a reference LPToken implementation backed by in-memory maps.
type MemLPToken struct {
	mu       sync.Mutex
	issuance map[string]uint64
	balances map[string]uint64
	created  map[string]bool
}

func NewMemLPToken() *MemLPToken {
	return &MemLPToken{
		issuance: make(map[string]uint64),
		balances: make(map[string]uint64),
		created:  make(map[string]bool),
	}
}

func lpKey(tokenID, account string) string { return tokenID + "|" + account }

func (m *MemLPToken) Create(tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.created[tokenID] {
		return types.ErrPoolExists.Wrap("lp token already created")
	}
	m.created[tokenID] = true
	return nil
}

func (m *MemLPToken) MintInto(tokenID, account string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issuance[tokenID] += amount
	m.balances[lpKey(tokenID, account)] += amount
	return nil
}

func (m *MemLPToken) BurnFrom(tokenID, account string, amount uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := lpKey(tokenID, account)
	if m.balances[key] < amount {
		return 0, types.ErrInsufficientLiquidityMinted.Wrap("insufficient lp token balance to burn")
	}
	m.balances[key] -= amount
	m.issuance[tokenID] -= amount
	return amount, nil
}

func (m *MemLPToken) TotalIssuance(tokenID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issuance[tokenID]
}

func (m *MemLPToken) Balance(tokenID, account string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[lpKey(tokenID, account)]
}
