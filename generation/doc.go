// Package generation sends assembled prompts to an Ollama backend and
// returns the produced text.
//
// The client calls POST {base}/api/generate in non-streaming mode with a
// fixed output-length cap (num_predict) and a low sampling temperature; both
// are configuration, not per-request parameters. The returned text is
// trimmed of surrounding whitespace; an empty string is a valid result.
//
// A 2xx response whose body cannot be decoded, or that lacks the "response"
// key entirely, is reported as ErrMalformedResponse.
package generation
