/*
Package observability turns turn lifecycle events into logs and metrics.

Both LoggingHooks and Metrics.Hooks return domain.LifecycleHooks, so they can be
combined with LifecycleHooks.Merge and handed to the dispatcher and the
conversation handler.
*/
package observability
