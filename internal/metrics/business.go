package metrics

// IncrementSetCreated increments the set creation counter
func (m *Metrics) IncrementSetCreated() {
	m.safeExecute("IncrementSetCreated", func() {
		m.SetCreatedTotal.Inc()
	})
}

// IncrementSetArchived increments the set archive counter
func (m *Metrics) IncrementSetArchived() {
	m.safeExecute("IncrementSetArchived", func() {
		m.SetArchivedTotal.Inc()
	})
}

// IncrementSetRestored increments the set restore counter
func (m *Metrics) IncrementSetRestored() {
	m.safeExecute("IncrementSetRestored", func() {
		m.SetRestoredTotal.Inc()
	})
}

// IncrementSetPurged increments the permanent deletion counter
func (m *Metrics) IncrementSetPurged() {
	m.safeExecute("IncrementSetPurged", func() {
		m.SetPurgedTotal.Inc()
	})
}

// IncrementOptionCreated increments the option creation counter
func (m *Metrics) IncrementOptionCreated() {
	m.safeExecute("IncrementOptionCreated", func() {
		m.OptionCreated.Inc()
	})
}

// IncrementFieldBound increments the field binding counter
func (m *Metrics) IncrementFieldBound() {
	m.safeExecute("IncrementFieldBound", func() {
		m.FieldBoundTotal.Inc()
	})
}

// SetLiveSetsTotal sets the live sets gauge
func (m *Metrics) SetLiveSetsTotal(count int64) {
	m.safeExecute("SetLiveSetsTotal", func() {
		m.LiveSetsTotal.Set(float64(count))
	})
}

// SetArchivedSetsTotal sets the archived sets gauge
func (m *Metrics) SetArchivedSetsTotal(count int64) {
	m.safeExecute("SetArchivedSetsTotal", func() {
		m.ArchivedSetsTotal.Set(float64(count))
	})
}
