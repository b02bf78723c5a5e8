package resources

import (
	"github.com/bioprocesslab/mediaprep/internal/domain"
	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// SourceKey identifies one logical liquid source.
type SourceKey struct {
	Plate     domain.PlateTag
	Well      domain.WellID
	Component domain.ComponentID
}

// ChannelUsage counts the work assigned to one pipette channel. Tips equals
// Transfers because every transfer uses a fresh tip.
type ChannelUsage struct {
	Transfers int
	Tips      int
	Racks     int
}

// Requirements is the provisioning summary for one plan.
type Requirements struct {
	// SourceVolumes maps each logical source to the total volume to
	// provision, including the dead-volume overhead.
	SourceVolumes map[SourceKey]float64

	// SourceOrder lists the sources in first-use order for deterministic
	// reporting.
	SourceOrder []SourceKey

	// Channels maps channel names to their usage counts.
	Channels map[string]ChannelUsage

	// ChannelOrder lists the channels in first-use order.
	ChannelOrder []string
}

// TotalTransfers returns the transfer count across all channels.
func (r Requirements) TotalTransfers() int {
	var n int
	for _, u := range r.Channels {
		n += u.Transfers
	}
	return n
}

// Summarize aggregates a plan into provisioning requirements. Every nonzero
// source total gets deadVolume added as reserved, undispensable residual;
// rack counts are ceil(tips/rackCapacity) per channel.
func Summarize(plan transfer.Plan, deadVolume float64, rackCapacity int) Requirements {
	req := Requirements{
		SourceVolumes: make(map[SourceKey]float64),
		Channels:      make(map[string]ChannelUsage),
	}

	for _, ti := range plan.Transfers() {
		key := SourceKey{Plate: ti.SourcePlate, Well: ti.SourceWell, Component: ti.Component}
		if _, seen := req.SourceVolumes[key]; !seen {
			req.SourceOrder = append(req.SourceOrder, key)
		}
		req.SourceVolumes[key] += ti.Volume

		if _, seen := req.Channels[ti.Channel]; !seen {
			req.ChannelOrder = append(req.ChannelOrder, ti.Channel)
		}
		u := req.Channels[ti.Channel]
		u.Transfers++
		u.Tips++
		req.Channels[ti.Channel] = u
	}

	for key, total := range req.SourceVolumes {
		if total > 0 {
			req.SourceVolumes[key] = total + deadVolume
		}
	}

	if rackCapacity > 0 {
		for name, u := range req.Channels {
			u.Racks = (u.Tips + rackCapacity - 1) / rackCapacity
			req.Channels[name] = u
		}
	}

	return req
}
