// Package pipeline implements the captioning workflow orchestrator.
//
// The core abstraction is [Engine], which sequences the backend calls for a
// single submitted video URL: check for manual captions, optionally download
// audio and transcribe it, formalize the subtitle text, then extract vocabulary
// matches. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
//
// A run is a linear chain: the first hard failure abandons it. The vocabulary
// extraction step is the one exception: its failure is recorded on the result
// and never fails a run that produced formal captions.
package pipeline
