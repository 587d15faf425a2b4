package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "traveller"
	// Subsystem for client metrics
	subsystem = "client"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalAPICollector is set by SetGlobalAPICollector when metrics are enabled
	globalAPICollector APIMetricsRecorder

	// globalDispatchCollector is set by SetGlobalDispatchCollector when metrics are enabled
	globalDispatchCollector DispatchMetricsRecorder

	// globalVesselCollector is set by SetGlobalVesselCollector when metrics are enabled
	globalVesselCollector VesselMetricsRecorder
)

// APIMetricsRecorder records HTTP traffic to the game service
type APIMetricsRecorder interface {
	RecordAPIRequest(method string, endpoint string, statusCode int, duration float64)
	RecordRateLimitWait(method string, endpoint string, duration float64)
	RecordSchemaViolation(resource string)
}

// DispatchMetricsRecorder records transaction dispatch outcomes
type DispatchMetricsRecorder interface {
	RecordDispatch(action string, outcome string, duration float64)
}

// VesselMetricsRecorder records the most recent vessel snapshot
type VesselMetricsRecorder interface {
	RecordVesselSnapshot(ship string, bank float64, fuelOnboard int, cargoFilled int, cargoCapacity int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and every global collector
func Reset() {
	Registry = nil
	globalAPICollector = nil
	globalDispatchCollector = nil
	globalVesselCollector = nil
}

// SetGlobalAPICollector sets the global API metrics collector
func SetGlobalAPICollector(collector APIMetricsRecorder) {
	globalAPICollector = collector
}

// RecordAPIRequest records an API request globally
func RecordAPIRequest(method string, endpoint string, statusCode int, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRequest(method, endpoint, statusCode, duration)
	}
}

// RecordRateLimitWait records rate limiter wait time globally
func RecordRateLimitWait(method string, endpoint string, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordRateLimitWait(method, endpoint, duration)
	}
}

// RecordSchemaViolation records a malformed payload globally
func RecordSchemaViolation(resource string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordSchemaViolation(resource)
	}
}

// SetGlobalDispatchCollector sets the global dispatch metrics collector
func SetGlobalDispatchCollector(collector DispatchMetricsRecorder) {
	globalDispatchCollector = collector
}

// RecordDispatch records a dispatch outcome globally
func RecordDispatch(action string, outcome string, duration float64) {
	if globalDispatchCollector != nil {
		globalDispatchCollector.RecordDispatch(action, outcome, duration)
	}
}

// SetGlobalVesselCollector sets the global vessel metrics collector
func SetGlobalVesselCollector(collector VesselMetricsRecorder) {
	globalVesselCollector = collector
}

// RecordVesselSnapshot records vessel gauges globally
func RecordVesselSnapshot(ship string, bank float64, fuelOnboard int, cargoFilled int, cargoCapacity int) {
	if globalVesselCollector != nil {
		globalVesselCollector.RecordVesselSnapshot(ship, bank, fuelOnboard, cargoFilled, cargoCapacity)
	}
}

// Collector is anything that can register itself with the Registry
type Collector interface {
	Register() error
}

// Enable creates the registry, registers every collector and installs
// them as the global recorders.
func Enable() error {
	InitRegistry()

	api := NewAPIMetricsCollector()
	dispatch := NewDispatchMetricsCollector()
	vessel := NewVesselMetricsCollector()
	command := NewCommandMetricsCollector()

	for _, c := range []Collector{api, dispatch, vessel, command} {
		if err := c.Register(); err != nil {
			Reset()
			return err
		}
	}

	SetGlobalAPICollector(api)
	SetGlobalDispatchCollector(dispatch)
	SetGlobalVesselCollector(vessel)
	globalCommandCollector = command
	return nil
}
