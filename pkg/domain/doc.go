/*
Package domain contains the core models of the carousel show.

It defines the slot sequence, the resolved configuration, the rotation
status and the error kinds surfaced by construction and dispatch. This
package is kept free of I/O so the controller, the adapters and the CLI
can share it without pulling in rendering or transport code.

# Key Entities

  - Slot: One page of the rotation (its position and source URL).
  - Partial / Config: Caller overrides and the configuration resolved over defaults.
  - Status: Lifecycle of a show (uninitialized, rotating, stopped).
  - Command: A rendering instruction streamed to remote surfaces (kiosk browsers).
*/
package domain
