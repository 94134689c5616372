/*
Package domain contains the core domain models for the nutrigraph engine.

It defines the fundamental entities of a workflow run: the State threaded
through the graph, the Step and Router capability contracts, the Run record,
and the error taxonomy shared by the builder and the executor. This package
is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - State: the mutable record one run threads from step to step.
  - Step: a named unit of work; transforms a State into the next State.
  - Router: selects a branch key for a conditional edge.
  - Run: the persistable record of one execution (path, final state, status).
  - LifecycleHooks: observability callbacks emitted by the executor.
*/
package domain
