package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistrationMetrics tracks bay registration outcomes.
type RegistrationMetrics struct {
	registered  prometheus.Counter
	conflicts   prometheus.Counter
	invalidCode prometheus.Counter
}

// NewRegistrationMetrics registers the registration counters on the provided registerer.
func NewRegistrationMetrics(reg prometheus.Registerer) *RegistrationMetrics {
	if reg == nil {
		return &RegistrationMetrics{}
	}
	registered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pc_registrations_total",
		Help: "Successful PC-to-bay registrations.",
	})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pc_registration_conflicts_total",
		Help: "Registrations rejected because the slot was already taken.",
	})
	invalidCode := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pc_registration_invalid_codes_total",
		Help: "Registrations rejected due to an invalid admission code.",
	})
	reg.MustRegister(registered, conflicts, invalidCode)
	return &RegistrationMetrics{
		registered:  registered,
		conflicts:   conflicts,
		invalidCode: invalidCode,
	}
}

// IncRegistered records a successful registration.
func (m *RegistrationMetrics) IncRegistered() {
	if m == nil || m.registered == nil {
		return
	}
	m.registered.Inc()
}

// IncConflict records a slot-conflict rejection.
func (m *RegistrationMetrics) IncConflict() {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.Inc()
}

// IncInvalidCode records an invalid-code rejection.
func (m *RegistrationMetrics) IncInvalidCode() {
	if m == nil || m.invalidCode == nil {
		return
	}
	m.invalidCode.Inc()
}
