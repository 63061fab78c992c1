// Package capture drives a camera through a cooperative polling loop.
//
// A Loop owns at most one device handle. Start acquires the device and
// schedules the first tick; each tick reads one frame, forwards it to the
// sink, and schedules the next tick only after the read has returned, so at
// most one read is ever in flight. Stop cancels the pending tick, waits for a
// read in progress, and releases the device exactly once.
//
// # States
//
//	Idle ──Start──▶ Starting ──acquired──▶ Running
//	  ▲                │                      │
//	  └──── failure ───┘◀──── Stop / lost ────┘
//
// Read misses are transient and only skip a tick. A disconnected device moves
// the loop back to Idle and fires a one-time notification.
//
// Ticks come from a Scheduler. TimerScheduler uses the runtime timers; tests
// substitute a scheduler they step by hand, so cancellation is observable
// without real time passing.
package capture
