package ncursesw

import "fmt"

// ownership says what closing a wrapper does.
type ownership uint8

const (
	// owner releases the native resource on Close.
	owner ownership = iota
	// view never releases anything.
	view
	// sessionScoped refuses Close; the session releases it.
	sessionScoped
)

func (o ownership) String() string {
	switch o {
	case owner:
		return "owner"
	case view:
		return "view"
	default:
		return "session"
	}
}

// node is the arena record of one native handle, shared by every wrapper
// of that handle.
type node struct {
	h   Handle
	seq uint64

	// derived nodes are released natively together with this one.
	derived []*node
	// children counts open wrappers that must close before an owner of
	// this node may.
	children int

	owned    bool
	released bool
}

// disposer is an owning wrapper the session can release at teardown.
type disposer interface {
	arenaNode() *node
	dispose(force bool) error
}

// arena tracks every handle a session has seen and the owning wrappers in
// creation order.
type arena struct {
	seq    uint64
	nodes  map[Handle]*node
	owners []disposer
}

func newArena() *arena {
	return &arena{nodes: make(map[Handle]*node)}
}

// track returns the node for h, creating it when new. from, when set, is
// the node whose release also releases h.
func (a *arena) track(h Handle, from *node) *node {
	if n, ok := a.nodes[h]; ok {
		return n
	}
	a.seq++
	n := &node{h: h, seq: a.seq}
	a.nodes[h] = n
	if from != nil {
		from.derived = append(from.derived, n)
	}
	return n
}

// adopt registers d as the single owner of its node.
func (a *arena) adopt(d disposer) error {
	n := d.arenaNode()
	if n.owned {
		return fmt.Errorf("handle %v already has an owner", n.h)
	}
	n.owned = true
	a.owners = append(a.owners, d)
	return nil
}

// release marks n and everything derived from it as gone.
func (a *arena) release(n *node) {
	if n.released {
		return
	}
	n.released = true
	for _, d := range n.derived {
		a.release(d)
	}
}

// live returns the owners not yet released, newest first.
func (a *arena) live() []disposer {
	var out []disposer
	for i := len(a.owners) - 1; i >= 0; i-- {
		if !a.owners[i].arenaNode().released {
			out = append(out, a.owners[i])
		}
	}
	return out
}

// releaseAll marks every node released.
func (a *arena) releaseAll() {
	for _, n := range a.nodes {
		n.released = true
	}
}
