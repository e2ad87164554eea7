package project

import "time"

// ClientProject is a guarded client site that employees are assigned to.
type ClientProject struct {
	ID        int64
	Name      string
	Address   *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Checkpoint is a fixed physical location within a project that a patrol is
// expected to visit. Latitude, Longitude and RadiusMeters may be unset, in
// which case no geofence is enforced for the checkpoint.
type Checkpoint struct {
	ID           int64
	ProjectID    int64
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters *float64
	// Sequence is an ordering hint for patrol routes; it is not enforced.
	Sequence  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRadiusMeters applies when a checkpoint is created without an
// explicit radius.
const DefaultRadiusMeters = 25.0

// HasGeofence reports whether the checkpoint carries enough data to enforce
// a geofence.
func (c Checkpoint) HasGeofence() bool {
	return c.Latitude != nil && c.Longitude != nil && c.RadiusMeters != nil && *c.RadiusMeters > 0
}
