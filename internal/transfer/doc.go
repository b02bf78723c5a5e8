// Package transfer expands a volume matrix into the ordered pipetting plan.
//
// Generation proceeds in four fixed stages (water, fixed-dose component,
// generic components in stock order, culture), each visiting destination
// wells in the matrix's row order. Within each logical transfer the
// allocator picks a pipette channel and splits volumes exceeding the
// channel's capacity into equal fresh-tip sub-transfers. Re-running the
// generator on identical inputs produces a byte-identical plan.
package transfer
