/*
Package transition holds the named visual hand-offs between two slots.

A Registry is built once (built-ins plus caller-supplied entries) and is
read-only afterwards, so it can be shared by any number of shows.

Every transition receives the outgoing rect, the incoming rect and an
Options record resolved with the precedence

	per-call override > transition defaults > controller configuration

and returns once the animation is dispatched. Completion is reported by
the surface through the callbacks on ports.Rect.
*/
package transition
