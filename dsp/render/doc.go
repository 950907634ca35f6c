// Package render drives a DSP engine with sample-accurate event
// interleaving.
//
// A Processor owns the per-block render loop: it pulls upstream samples,
// splits the block at event timestamps and calls the engine for each
// sub-segment so parameter and MIDI events take effect on the exact frame
// they were scheduled for. Events arrive as a singly linked list ordered by
// sample time; ties are applied in list order.
//
// Output buffers may alias the input buffers, and passing nil output
// channels requests fully in-place operation on the processor's internal
// buffers. After StartProcessing the render path performs no heap
// allocation.
package render
