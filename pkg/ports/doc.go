/*
Package ports defines the driven ports (interfaces) for statusmap.

These interfaces decouple map compilation from where definitions live, allowing
the same maps to be read from files, Loam vaults or databases.

# Key Interfaces

  - DefinitionLoader: Reads one definition from a source (YAML, HCL, Loam).
  - DefinitionStore: Persists named definitions (Memory, Redis, SQLite).
  - Watchable: Signals that a source changed and should be reloaded.
*/
package ports
