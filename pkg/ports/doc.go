/*
Package ports defines the driven ports (interfaces) of the Wayfarer planner.

These interfaces decouple the wizard from external implementations, allowing it to
run against various session backends and catalog sources.

# Key Interfaces

  - SessionStore: persists and loads wizard sessions (memory, file, redis).
  - DistributedLocker: serializes access to a session across replicas.
  - CatalogSource: supplies raw place records (file, Loam directory).
  - Planner: the operation set consumed by the HTTP, MCP and CLI adapters.
*/
package ports
