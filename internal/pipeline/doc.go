/*
Package pipeline wires the frame loader, the optimizer, the GIF assembler and
the reporter into the two spinframe runs.

Thumbnails writes one size-budgeted still per source image. Animation writes
one looping GIF from all of them. The two are independent: each scans the
source directory itself and takes its own lock, so either can run alone.

Both process frames strictly one at a time and check ctx between frames.
A cancelled run returns ctx.Err() and leaves whatever it already wrote.

Missing input is reported as ErrMissingInput before anything is created on
disk. The animation pipeline also fails with ErrNoFrames when every source
failed to load. Any other per-frame problem is logged and skipped.
*/
package pipeline
