/*
Package observability provides tools for monitoring a running show.

Lifecycle hooks from several consumers (logging, metrics, the kiosk hub)
can be combined into one domain.LifecycleHooks value with Combine, and
LogHooks turns every rotation event into a structured log record.
*/
package observability
