/*
Package observability turns importer lifecycle events into Prometheus metrics.

Metrics are registered on a private registry and exported through the
textfile format, so a one-shot import can leave its numbers for a node
exporter to pick up without opening a listener.
*/
package observability
