/*
Package ports defines the driven ports (interfaces) of a carousel show.

These interfaces decouple the rotation logic from the host environment, so
the same controller drives a headless recorder in tests and a kiosk browser
in production.

# Key Interfaces

  - Surface / Container / Rect: The rendering collaborator (mount, embed, show, hide, animate).
  - Clock: Repeating timer and one-shot timers used for ticks and animation completion.
  - CommandBus: Fan-out of rendering commands to remote surfaces (in-process or Redis).
  - DistributedLocker: Leader election so only one replica rotates a given show.
*/
package ports
