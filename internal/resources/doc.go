// Package resources sums what a plan consumes: per-source volumes with a
// dead-volume overhead, and transfer, tip, and rack counts per pipette
// channel. The summary is advisory provisioning output; it never feeds back
// into plan generation.
package resources
