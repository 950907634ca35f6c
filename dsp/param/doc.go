// Package param provides lock-free ramped parameter primitives for
// real-time audio kernels.
//
// Every parameter keeps two values. The immediate value belongs to the
// render thread and is the only value audio math may read. The pending value
// is written by the control surface and is transferred to the immediate side
// only when the render thread explicitly pulls it at a safe boundary
// (typically the start of a render call or an event application point).
// Pending stores use atomics so cross-thread reads are never torn; beyond
// that no ordering is guaranteed, which is sufficient for human-timescale
// control changes.
//
// Immediate changes may be ramped: a non-zero duration linearly interpolates
// from the previous immediate value to the target over that many frames,
// then locks at the target.
package param
