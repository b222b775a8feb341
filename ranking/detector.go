package ranking

// Detector compares each observed snapshot against the previous one.
// The zero value is ready to use.
type Detector struct {
	prev    Snapshot
	hasPrev bool
}

// Observe stores current as the previous snapshot and reports whether it
// differs from the one observed before. The first observation never fires.
func (d *Detector) Observe(current Snapshot) bool {
	fired := d.hasPrev && !d.prev.Equal(current)

	// Copy so later mutation of the caller's slice cannot alter history
	d.prev = append(d.prev[:0], current...)
	d.hasPrev = true

	return fired
}

// Previous returns the stored snapshot and whether one exists.
func (d *Detector) Previous() (Snapshot, bool) {
	if !d.hasPrev {
		return nil, false
	}
	return append(Snapshot(nil), d.prev...), true
}

// Reset forgets the stored snapshot; the next observation will not fire.
func (d *Detector) Reset() {
	d.prev = d.prev[:0]
	d.hasPrev = false
}
