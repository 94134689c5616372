/*
Package graph provides the workflow graph builder and the compiled,
immutable Graph it produces.

A graph is assembled by registering named steps and connecting them with
unconditional edges or conditional edges (a router function plus a branch
map). Duplicate or unknown step names are rejected at registration time;
Compile rejects unreachable steps and missing terminals, then freezes the
definition into a Graph that many concurrent runs can share safely.

The Start and End identifiers are pseudo-nodes: Start marks the entry edge,
End marks an explicit terminal. A registered step with no outgoing edge is
also terminal.
*/
package graph
