package types

// Tick is the insertion-ordered aggregate of every resting order at one
// price on one side of a pool. Fill and cancel both preserve arrival order:
// the order slice only ever shrinks from the front (on a full fill) or by
// removing a single element (on cancel), so it never needs re-sorting.
type Tick struct {
	orders map[OrderID]*Order
	order  []OrderID
}

func NewTick() *Tick {
	return &Tick{orders: make(map[OrderID]*Order)}
}

func (t *Tick) IsEmpty() bool { return len(t.orders) == 0 }

func (t *Tick) Len() int { return len(t.orders) }

func (t *Tick) Place(id OrderID, owner string, qty, expiry uint64) {
	t.orders[id] = &Order{ID: id, Owner: owner, Quantity: qty, ExpiryBlock: expiry}
	t.order = append(t.order, id)
}

// Fill is one maker's contribution to a taker sweep.
type Fill struct {
	Owner string
	Qty   uint64
}

// Fill consumes up to qty from the tick in FIFO arrival order, fully
// draining each order before moving to the next, and returns one Fill per
// order touched. A partially filled order at the front stays in place with
// its quantity reduced.
func (t *Tick) Fill(qty uint64) []Fill {
	var fills []Fill
	remaining := qty
	consumed := 0
	for _, id := range t.order {
		if remaining == 0 {
			break
		}
		o := t.orders[id]
		if o.Quantity <= remaining {
			fills = append(fills, Fill{Owner: o.Owner, Qty: o.Quantity})
			remaining -= o.Quantity
			delete(t.orders, id)
			consumed++
		} else {
			o.Quantity -= remaining
			fills = append(fills, Fill{Owner: o.Owner, Qty: remaining})
			remaining = 0
		}
	}
	t.order = t.order[consumed:]
	return fills
}

// Cancel reduces an order's quantity, owned by owner, removing it entirely
// once it reaches zero.
func (t *Tick) Cancel(owner string, id OrderID, qty uint64) error {
	o, ok := t.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Owner != owner {
		return ErrNoPermission
	}
	if qty > o.Quantity {
		return ErrOverQuantity
	}
	o.Quantity -= qty
	if o.Quantity == 0 {
		delete(t.orders, id)
		for i, oid := range t.order {
			if oid == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (t *Tick) TotalQuantity() uint64 {
	var total uint64
	for _, id := range t.order {
		total += t.orders[id].Quantity
	}
	return total
}

func (t *Tick) OrdersOf(owner string) []*Order {
	var res []*Order
	for _, id := range t.order {
		if o := t.orders[id]; o.Owner == owner {
			res = append(res, o)
		}
	}
	return res
}

// Clone deep-copies the tick so a keeper-level copy-on-write snapshot never
// shares mutable order state with the committed tree.
func (t *Tick) Clone() *Tick {
	nt := &Tick{
		orders: make(map[OrderID]*Order, len(t.orders)),
		order:  append([]OrderID(nil), t.order...),
	}
	for id, o := range t.orders {
		cp := *o
		nt.orders[id] = &cp
	}
	return nt
}
