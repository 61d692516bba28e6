package keeper

import (
	"sync"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// Preservation mirrors fungible::Preservation from the custody vocabulary
// this interface is grounded on: Expendable allows an account to be fully
// drained or left at any balance, Preserve refuses a transfer that would
// leave it with a non-zero balance below its minimum. MemCustody's Preserve
// does not refuse a transfer that empties the account to exactly zero.
type Preservation int

const (
	Preserve Preservation = iota
	Expendable
)

const (
	FreezeReasonBid = "bid-order"
	FreezeReasonAsk = "ask-order"
)

// Custody is the external balance-holding collaborator. The matcher never
// touches a ledger directly; every balance change is a call through this
// interface, so a host can back it with its own account system.
type Custody interface {
	Balance(account, asset string) uint64
	MinimumBalance(asset string) uint64
	Transfer(asset, from, to string, amount uint64, preservation Preservation) error
	Withdraw(asset, account string, amount uint64, preservation Preservation) (uint64, error)
	Resolve(account, asset string, credit uint64) error
	FreezeIncrease(asset, reason, account string, amount uint64) error
	FreezeDecrease(asset, reason, account string, amount uint64) error
	FrozenBalance(asset, reason, account string) uint64
	ShouldTouch(asset, account string) bool
	Touch(asset, account, payer string) error
}

// MemCustody is a reference Custody implementation backed by in-memory
// maps, standing in for a host's real asset ledger in tests and the CLI demo.
type MemCustody struct {
	mu       sync.Mutex
	balances map[string]uint64
	frozen   map[string]uint64
	touched  map[string]bool
	minBal   map[string]uint64
}

func NewMemCustody() *MemCustody {
	return &MemCustody{
		balances: make(map[string]uint64),
		frozen:   make(map[string]uint64),
		touched:  make(map[string]bool),
		minBal:   make(map[string]uint64),
	}
}

func balKey(asset, account string) string { return asset + "|" + account }
func frozenKey(asset, reason, account string) string { return asset + "|" + reason + "|" + account }

func (m *MemCustody) SetMinimumBalance(asset string, amt uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minBal[asset] = amt
}

// Mint credits account out of thin air; only the CLI demo and tests use it
// to seed balances, never the matching path itself.
func (m *MemCustody) Mint(asset, account string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balKey(asset, account)] += amount
}

func (m *MemCustody) Balance(account, asset string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[balKey(asset, account)]
}

func (m *MemCustody) MinimumBalance(asset string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.minBal[asset]
}

func (m *MemCustody) Transfer(asset, from, to string, amount uint64, preservation Preservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fromKey := balKey(asset, from)
	if m.balances[fromKey] < amount {
		return types.ErrBelowMinimumBalance.Wrap("insufficient balance for transfer")
	}
	remaining := m.balances[fromKey] - amount
	if preservation == Preserve && remaining > 0 && remaining < m.minBal[asset] {
		return types.ErrBelowMinimumBalance.Wrap("transfer would leave sender below its minimum balance")
	}
	m.balances[fromKey] = remaining
	m.balances[balKey(asset, to)] += amount
	return nil
}

func (m *MemCustody) Withdraw(asset, account string, amount uint64, preservation Preservation) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := balKey(asset, account)
	if m.balances[key] < amount {
		return 0, types.ErrBelowMinimumBalance.Wrap("insufficient balance to withdraw")
	}
	remaining := m.balances[key] - amount
	if preservation == Preserve && remaining > 0 && remaining < m.minBal[asset] {
		return 0, types.ErrBelowMinimumBalance.Wrap("withdraw would leave account below its minimum balance")
	}
	m.balances[key] = remaining
	return amount, nil
}

func (m *MemCustody) Resolve(account, asset string, credit uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balKey(asset, account)] += credit
	return nil
}

func (m *MemCustody) FreezeIncrease(asset, reason, account string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := balKey(asset, account)
	if m.balances[key] < amount {
		return types.ErrBelowMinimumBalance.Wrap("insufficient balance to freeze")
	}
	m.balances[key] -= amount
	m.frozen[frozenKey(asset, reason, account)] += amount
	return nil
}

func (m *MemCustody) FreezeDecrease(asset, reason, account string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := frozenKey(asset, reason, account)
	if m.frozen[key] < amount {
		return types.ErrArithmeticOverflow.Wrap("freeze balance underflow")
	}
	m.frozen[key] -= amount
	m.balances[balKey(asset, account)] += amount
	return nil
}

func (m *MemCustody) FrozenBalance(asset, reason, account string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frozen[frozenKey(asset, reason, account)]
}

func (m *MemCustody) ShouldTouch(asset, account string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.touched[balKey(asset, account)]
}

func (m *MemCustody) Touch(asset, account, payer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[balKey(asset, account)] = true
	return nil
}
