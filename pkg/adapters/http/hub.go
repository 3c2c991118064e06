package http

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/carousel/pkg/adapters/memory"
	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/ports"
)

type slotState struct {
	url     string
	visible bool
}

// Hub is the command sink behind the kiosk page. It fans commands out to
// connected browsers and folds them into the settled page state, which a
// browser receives as a snapshot when it connects mid-show.
type Hub struct {
	bus *memory.Bus

	mu      sync.Mutex
	show    string
	mounted bool
	slots   map[int]*slotState
	lastSeq uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		bus:   memory.NewBus(),
		slots: make(map[int]*slotState),
	}
}

// Publish applies cmd and forwards it to every connected browser.
func (h *Hub) Publish(ctx context.Context, cmd domain.Command) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.apply(cmd)
	return h.bus.Publish(ctx, cmd)
}

func (h *Hub) apply(cmd domain.Command) {
	if cmd.Seq > h.lastSeq {
		h.lastSeq = cmd.Seq
	}
	if cmd.Show != "" {
		h.show = cmd.Show
	}
	switch cmd.Op {
	case domain.OpMount:
		h.mounted = true
		h.slots = make(map[int]*slotState)
	case domain.OpUnmount:
		h.mounted = false
		h.slots = make(map[int]*slotState)
	case domain.OpEmbed:
		h.slots[cmd.Slot] = &slotState{url: cmd.URL}
	case domain.OpRemove:
		delete(h.slots, cmd.Slot)
	case domain.OpShow, domain.OpFadeIn, domain.OpSlideDown:
		if s, ok := h.slots[cmd.Slot]; ok {
			s.visible = true
		}
	case domain.OpHide, domain.OpFadeOut:
		if s, ok := h.slots[cmd.Slot]; ok {
			s.visible = false
		}
	}
}

// Subscribe returns the settled state as a command list followed by a live
// channel. No command is lost or repeated between the two.
func (h *Hub) Subscribe(ctx context.Context) ([]domain.Command, <-chan domain.Command, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, cancel, err := h.bus.Subscribe(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return h.snapshotLocked(), ch, cancel, nil
}

// Snapshot returns the settled state as a command list.
func (h *Hub) Snapshot() []domain.Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

// Snapshot commands carry the last applied sequence number.
func (h *Hub) snapshotLocked() []domain.Command {
	if !h.mounted {
		return nil
	}
	cmds := []domain.Command{{Seq: h.lastSeq, Show: h.show, Op: domain.OpMount, Slot: -1}}

	idx := make([]int, 0, len(h.slots))
	for i := range h.slots {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		cmds = append(cmds, domain.Command{Seq: h.lastSeq, Show: h.show, Op: domain.OpEmbed, Slot: i, URL: h.slots[i].url})
	}
	for _, i := range idx {
		if h.slots[i].visible {
			cmds = append(cmds, domain.Command{Seq: h.lastSeq, Show: h.show, Op: domain.OpShow, Slot: i})
		}
	}
	return cmds
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	return h.bus.Len()
}

var _ ports.CommandSink = (*Hub)(nil)
