package mint

// Owner-gated configuration operations. Each is a single-field write that
// bumps the config version and emits a config event.

func (m *Minter) requireOwner(caller string) error {
	if caller != m.cfg.Owner {
		return ErrNotOwner
	}
	return nil
}

func (m *Minter) configEvent(field, value string) {
	m.emit("config", map[string]any{
		"field":   field,
		"value":   value,
		"version": m.cfg.Version,
		"height":  m.height,
	})
}

// Pause blocks all balance-mutating operations.
func (m *Minter) Pause(caller string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	m.cfg.Paused = true
	m.cfg.Version++
	m.configEvent("paused", "true")
	return true, nil
}

// Unpause restores normal operation.
func (m *Minter) Unpause(caller string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	m.cfg.Paused = false
	m.cfg.Version++
	m.configEvent("paused", "false")
	return true, nil
}

// SetFeeRecipient changes the account credited by the settlement rail.
func (m *Minter) SetFeeRecipient(caller, account string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	m.cfg.FeeRecipient = account
	m.cfg.Version++
	m.configEvent("feeRecipient", account)
	return true, nil
}

// SetAttester changes the trusted attester address.
func (m *Minter) SetAttester(caller, addr string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	m.cfg.Attester = addr
	m.cfg.Version++
	m.configEvent("attester", addr)
	return true, nil
}

// SetRegistry changes the producer registry address.
func (m *Minter) SetRegistry(caller, addr string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	m.cfg.Registry = addr
	m.cfg.Version++
	m.configEvent("registry", addr)
	return true, nil
}

// TransferOwnership hands the owner role to a new account. Transferring to
// the current owner is rejected.
func (m *Minter) TransferOwnership(caller, newOwner string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return false, err
	}
	if newOwner == caller {
		return false, ErrSelfOwnership
	}
	m.cfg.Owner = newOwner
	m.cfg.Version++
	m.configEvent("owner", newOwner)
	return true, nil
}
