// Package rag implements the chat orchestration pipeline: the staged
// sequence retrieve → build-prompt → generate, each stage independently
// timeout-bounded, composed under one overall deadline.
//
// The pipeline has exactly three fixed stages. A stage's output is the next
// stage's input; no stage is skipped or reordered; the first failing stage
// aborts the rest. Failures are classified into the package's error
// taxonomy (timeout, unavailable or malformed, per downstream) and wrapped
// with the stage name and request correlation id before being returned.
//
// The orchestrator holds no state across calls; every invocation is
// independent and safe to run concurrently with others. The only shared
// side effects are metric observations.
package rag
