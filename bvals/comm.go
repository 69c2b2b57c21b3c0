package bvals

import (
	"math"
)

// Fabric is the in-process rank interconnect: one buffered inbox per rank
// plus a channel pair used by the reduction collective. All ranks of a run
// share one Fabric; each driver goroutine talks to it through its Topology.
type Fabric struct {
	NRanks int
	inbox  []chan parcel
	reduce []chan float64
}

type parcel struct {
	tag  int
	data []float64 // snapshot of the sender's packed slab, taken at enqueue
}

// NewFabric sizes every inbox to depth messages. Isend enqueues without
// blocking as long as no rank has more than depth undelivered messages in
// flight, which mirrors buffered-send transport semantics.
func NewFabric(nranks, depth int) (f *Fabric) {
	if depth <= 0 {
		depth = 4096
	}
	f = &Fabric{
		NRanks: nranks,
		inbox:  make([]chan parcel, nranks),
		reduce: make([]chan float64, nranks),
	}
	for r := 0; r < nranks; r++ {
		f.inbox[r] = make(chan parcel, depth)
		f.reduce[r] = make(chan float64, nranks)
	}
	return
}

// Topology is the explicit process-topology context handed to every engine
// that communicates. It owns the rank's view of the fabric, including the
// stash of parcels that arrived before their receive was polled. One
// Topology is driven by exactly one goroutine.
type Topology struct {
	Rank int
	fab  *Fabric

	pending map[int][]float64
}

func (f *Fabric) Topo(rank int) *Topology {
	return &Topology{
		Rank:    rank,
		fab:     f,
		pending: make(map[int][]float64),
	}
}

func (t *Topology) Size() int { return t.fab.NRanks }

// Request is a reusable async-transfer slot. Send requests complete at
// enqueue; receive requests complete when Test finds the matching tag.
type Request struct {
	topo *Topology
	tag  int
	buf  []float64
	recv bool
	done bool
}

// Isend enqueues data for the destination rank. The payload is snapshotted
// at enqueue, so the caller is free to repack its slab immediately: a sender
// can run a full cycle ahead of a receiver that has not drained its inbox yet
// and the undelivered parcel still carries the old cycle's data.
func (t *Topology) Isend(dest, tag int, data []float64, req *Request) {
	t.fab.inbox[dest] <- parcel{tag: tag, data: append([]float64(nil), data...)}
	*req = Request{topo: t, tag: tag, done: true}
}

// Irecv arms a receive slot for one tagged message; buf is filled when a
// later Test matches the tag.
func (t *Topology) Irecv(tag int, buf []float64, req *Request) {
	*req = Request{topo: t, tag: tag, buf: buf, recv: true}
}

// Test polls for completion without blocking. For receives it drains the
// rank inbox into the tag-keyed stash, then checks for its own tag.
func (r *Request) Test() bool {
	if r.done {
		return true
	}
	if !r.recv {
		return false
	}
	t := r.topo
	for {
		select {
		case p := <-t.fab.inbox[t.Rank]:
			t.pending[p.tag] = p.data
		default:
			if data, ok := t.pending[r.tag]; ok {
				copy(r.buf, data)
				delete(t.pending, r.tag)
				r.done = true
			}
			return r.done
		}
	}
}

// AllReduceMin is a collective: every rank contributes v and all receive the
// global minimum. Rank 0 gathers and rebroadcasts. Doubles as a barrier
// between stages of the driver loop.
func (t *Topology) AllReduceMin(v float64) float64 {
	var (
		f    = t.fab
		size = f.NRanks
	)
	if size == 1 {
		return v
	}
	if t.Rank == 0 {
		for r := 1; r < size; r++ {
			v = math.Min(v, <-f.reduce[0])
		}
		for r := 1; r < size; r++ {
			f.reduce[r] <- v
		}
		return v
	}
	f.reduce[0] <- v
	return <-f.reduce[t.Rank]
}

// CreateTag builds the message tag from the receiving block's local ID, the
// receiving buffer index (0..25) and the caller's exchange key (0..31).
// Keys must be unique per concurrently-active (field, stage) pair or
// messages from different exchanges would cross-match.
func CreateTag(lid, bufIdx, key int) int {
	return key + 32*(bufIdx+32*lid)
}
