// Package display projects pixel buffers onto bounded on-screen surfaces.
//
// A projection preserves aspect ratio and never upscales: the result is at
// most maxWidth×maxHeight and never larger than the source. Shrinking uses
// area averaging, so previews of detailed images do not alias.
//
// Surfaces are opaque sinks. The desktop front end binds a fyne canvas image;
// the headless front end and tests use SnapshotSurface, which keeps the most
// recent frame in memory.
package display
