package billdraft

import (
	"encoding/json"

	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

// Snapshot serializes the draft for durable storage between requests.
func (d *Draft) Snapshot() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode draft snapshot")
	}
	return data, nil
}

// Restore decodes a snapshot and recomputes the derived totals, so a stale or
// hand-edited snapshot can never carry inconsistent amounts back into a
// session.
func Restore(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to decode draft snapshot")
	}
	d.recompute()
	return &d, nil
}
