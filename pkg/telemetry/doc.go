// Package telemetry groups the observability subpackages: structured
// logging (telemetry/logging) and Prometheus metrics
// (telemetry/metrics).
package telemetry
