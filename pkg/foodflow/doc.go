/*
Package foodflow defines the two demo food-image nutrition workflows.

The step bodies are stubs: they log, set the demo flags the routers read,
and pass the state through otherwise. Real vision inference, medical-report
parsing, and nutrition lookups are external collaborators; integrators
supply them by overriding steps and routers with the WithStep and
WithRouter options. The graph topology and the routing contracts are the
part with real semantics.
*/
package foodflow
