/*
Package ports defines the driven ports (interfaces) of the gymnasion engine.

These interfaces decouple turn processing from storage and coordination backends.

# Key Interfaces

  - SessionStore: persists and loads per-session state (memory, file, Redis).
  - DistributedLocker: serializes turns of one session across several replicas.

RunSessionStoreContract is a reusable test suite every SessionStore adapter runs.
*/
package ports
