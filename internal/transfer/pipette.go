package transfer

import (
	"fmt"
	"math"
	"sort"

	"github.com/bioprocesslab/mediaprep/internal/domain"
)

// Channel describes one pipette channel available on the deck.
type Channel struct {
	// Name identifies the channel (e.g. "p20").
	Name string `toml:"name"`

	// Max is the largest volume the channel can deliver in one transfer, in µL.
	Max float64 `toml:"max_volume"`
}

// DefaultChannels returns the standard single-channel pair of the deck.
func DefaultChannels() []Channel {
	return []Channel{
		{Name: "p20", Max: 20},
		{Name: "p300", Max: 300},
	}
}

// SubTransfer is one channel-assigned slice of a logical transfer. Every
// sub-transfer uses its own fresh tip; tip reuse is never permitted.
type SubTransfer struct {
	Channel string
	Volume  float64
}

// Allocator assigns pipette channels to transfer volumes. It is the
// authoritative gate for the minimum transfer volume: requests below the
// threshold produce no sub-transfers.
type Allocator struct {
	channels  []Channel // sorted by ascending capacity
	minVolume float64
}

// NewAllocator creates an allocator over the given channels.
func NewAllocator(channels []Channel, minVolume float64) (*Allocator, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: at least one pipette channel is required", domain.ErrInvalidConfig)
	}
	sorted := append([]Channel(nil), channels...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Max < sorted[j].Max })
	for _, ch := range sorted {
		if ch.Name == "" || ch.Max <= 0 {
			return nil, fmt.Errorf("%w: channel %q must have a name and positive capacity", domain.ErrInvalidConfig, ch.Name)
		}
	}
	return &Allocator{channels: sorted, minVolume: minVolume}, nil
}

// Allocate splits a volume across one channel. Selection is automatic when
// override is empty: the smallest channel whose capacity covers the volume,
// or the largest channel with the volume split into ceil(v/max) equal
// fresh-tip sub-transfers. A non-empty override names the channel to use,
// bypassing auto-selection but still splitting oversized volumes.
func (a *Allocator) Allocate(volume float64, override string) ([]SubTransfer, error) {
	if volume < a.minVolume {
		return nil, nil
	}

	var ch Channel
	if override != "" {
		found := false
		for _, c := range a.channels {
			if c.Name == override {
				ch, found = c, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown pipette channel %q", domain.ErrInvalidConfig, override)
		}
	} else {
		ch = a.channels[len(a.channels)-1]
		for _, c := range a.channels {
			if c.Max >= volume {
				ch = c
				break
			}
		}
	}

	if volume <= ch.Max {
		return []SubTransfer{{Channel: ch.Name, Volume: volume}}, nil
	}

	n := int(math.Ceil(volume / ch.Max))
	per := volume / float64(n)
	subs := make([]SubTransfer, n)
	for i := range subs {
		subs[i] = SubTransfer{Channel: ch.Name, Volume: per}
	}
	return subs, nil
}

// MinVolume returns the allocator's minimum transfer threshold.
func (a *Allocator) MinVolume() float64 {
	return a.minVolume
}
