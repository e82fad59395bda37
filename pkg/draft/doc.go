// Package draft persists the in-progress contact form into a single storage
// slot and restores it on startup. A draft older than the retention window, or
// one that no longer parses as a Draft, is discarded and its slot cleared;
// storage failures never surface to the user beyond an empty form.
//
// Every Save also drives a cosmetic status sequence on the host status line:
// an immediate "saving" message followed, after a short delay, by "saved".
// The sequence is not tied to the outcome of the write.
package draft
