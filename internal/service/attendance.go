package service

// AttendanceDistanceMeters computes how far a staff member checked in from
// the issue site. Stored in meters for precision. Non-finite staff
// coordinates are rejected before any computation.
func AttendanceDistanceMeters(issueLat, issueLon, staffLat, staffLon float64) (float64, error) {
	if !isFinite(staffLat) || !isFinite(staffLon) {
		return 0, ErrInvalidAttendance
	}
	return KmToMeters(HaversineKm(issueLat, issueLon, staffLat, staffLon)), nil
}
