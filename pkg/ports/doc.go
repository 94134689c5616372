/*
Package ports defines the interfaces between the workflow engine core and
its adapters (persistence, presentation), following Hexagonal Architecture
principles. Implementations live under pkg/adapters.
*/
package ports
