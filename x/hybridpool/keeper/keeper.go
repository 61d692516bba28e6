package keeper

import (
	"sync"

	"cosmossdk.io/log"

	"github.com/openalpha/hybridbook/metrics"
	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// Pool is one asset pair's complete matching state: its order trees, its id
// allocator, and the configuration fixed at creation. Reserves are not
// stored here; they live in the custody collaborator under Address.
type Pool struct {
	ID         string
	Address    string
	BaseAsset  string
	QuoteAsset string
	LPToken    string
	Config     types.PoolConfig
	Bids       *CritbitTree
	Asks       *CritbitTree
	IDs        *types.IDAllocator
}

func newPool(id, address, base, quote, lpToken string, cfg types.PoolConfig) *Pool {
	return &Pool{
		ID:         id,
		Address:    address,
		BaseAsset:  base,
		QuoteAsset: quote,
		LPToken:    lpToken,
		Config:     cfg,
		Bids:       NewCritbitTree(),
		Asks:       NewCritbitTree(),
		IDs:        types.NewIDAllocator(),
	}
}

// clone is the copy-on-write snapshot an operation mutates freely: on
// success the keeper commits it in place of the prior pool, on failure it
// is discarded and the committed pool is never touched.
func (p *Pool) clone() *Pool {
	cp := *p
	cp.Bids = p.Bids.Clone()
	cp.Asks = p.Asks.Clone()
	ids := *p.IDs
	cp.IDs = &ids
	return &cp
}

func oppositeTree(p *Pool, side types.Side) *CritbitTree {
	if side == types.SideBid {
		return p.Asks
	}
	return p.Bids
}

func sameTree(p *Pool, side types.Side) *CritbitTree {
	if side == types.SideBid {
		return p.Bids
	}
	return p.Asks
}

// Keeper owns every pool's in-memory matching state and orchestrates calls
// to the Custody and LPToken collaborators around it. It holds no
// persistent storage handle: per this module's scope, durability is the
// host's concern.
type Keeper struct {
	mu      sync.Mutex
	logger  log.Logger
	custody Custody
	lpToken LPToken
	locator types.PoolLocator
	metrics *metrics.Collector
	pools   map[string]*Pool
}

func NewKeeper(custody Custody, lpToken LPToken, locator types.PoolLocator, logger log.Logger, m *metrics.Collector) *Keeper {
	return &Keeper{
		logger:  logger.With("module", "x/"+types.ModuleName),
		custody: custody,
		lpToken: lpToken,
		locator: locator,
		metrics: m,
		pools:   make(map[string]*Pool),
	}
}

func (k *Keeper) Logger() log.Logger { return k.logger }

func (k *Keeper) getPool(poolID string) (*Pool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	p, ok := k.pools[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound
	}
	return p, nil
}

// withPool runs fn against a private clone of the committed pool, committing
// the clone only if fn returns nil. This is the transactional scope every
// state-mutating operation in this package runs inside.
func (k *Keeper) withPool(poolID string, fn func(p *Pool, em *eventEmitter) error) ([]Event, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	pool, ok := k.pools[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound
	}
	working := pool.clone()
	em := newEventEmitter()
	if err := fn(working, em); err != nil {
		k.logger.Debug("operation aborted, working pool state discarded", "pool_id", poolID, "error", err)
		return nil, err
	}
	k.pools[poolID] = working
	return em.events, nil
}
