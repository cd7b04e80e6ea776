package ising

// Mode enums marshal as their names so configurations read naturally in
// JSON output.

func (m VisitationMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *VisitationMode) UnmarshalText(b []byte) error {
	v, err := ParseVisitation(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m AcceptanceMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *AcceptanceMode) UnmarshalText(b []byte) error {
	v, err := ParseAcceptance(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m BoundaryMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *BoundaryMode) UnmarshalText(b []byte) error {
	v, err := ParseBoundary(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (p InitPattern) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *InitPattern) UnmarshalText(b []byte) error {
	v, err := ParseInit(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (t Topology) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
