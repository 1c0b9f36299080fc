// Package defaults centralizes timeout and naming constants used across
// probes, the cluster inspector, and the delivery strategies.
package defaults
