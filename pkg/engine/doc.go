/*
Package engine runs compiled workflow graphs to completion.

The Executor walks a graph strictly sequentially: it executes the current
step against the current state, resolves the outgoing edge (through the
router for conditional edges), and advances until it reaches End or a step
with no outgoing edge. A configurable step budget guards against
accidentally cyclic graphs.

An Executor holds no per-run state and may serve many concurrent runs of
the same or different graphs.
*/
package engine
