package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// VesselMetricsCollector exposes the last fetched vessel snapshot as gauges
type VesselMetricsCollector struct {
	bankBalance   *prometheus.GaugeVec
	fuelOnboard   *prometheus.GaugeVec
	cargoFilled   *prometheus.GaugeVec
	cargoCapacity *prometheus.GaugeVec
}

// NewVesselMetricsCollector creates a new vessel metrics collector
func NewVesselMetricsCollector() *VesselMetricsCollector {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      name,
				Help:      help,
			},
			[]string{"ship"},
		)
	}
	return &VesselMetricsCollector{
		bankBalance:   gauge("ship_bank_credits", "Ship's bank balance in credits"),
		fuelOnboard:   gauge("ship_fuel_onboard_dtons", "Fuel onboard in dTons"),
		cargoFilled:   gauge("ship_cargo_filled_dtons", "Cargo hold space in use"),
		cargoCapacity: gauge("ship_cargo_capacity_dtons", "Cargo hold capacity"),
	}
}

// Register registers all vessel metrics with the Prometheus registry
func (c *VesselMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.bankBalance, c.fuelOnboard, c.cargoFilled, c.cargoCapacity} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordVesselSnapshot sets every gauge for the ship
func (c *VesselMetricsCollector) RecordVesselSnapshot(ship string, bank float64, fuelOnboard int, cargoFilled int, cargoCapacity int) {
	c.bankBalance.WithLabelValues(ship).Set(bank)
	c.fuelOnboard.WithLabelValues(ship).Set(float64(fuelOnboard))
	c.cargoFilled.WithLabelValues(ship).Set(float64(cargoFilled))
	c.cargoCapacity.WithLabelValues(ship).Set(float64(cargoCapacity))
}
