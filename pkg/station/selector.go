package station

// LeastCrowded returns the station with the fewest waiting voters, the lowest
// id wins a tie. Stations are expected in ascending id order.
//
// Each station is read under its own guard, one after the other, so the counts
// are only momentarily consistent: an enqueue may land between the read and
// the caller's own enqueue. Load balancing is approximate.
//
// When servers drain their queues faster than voters arrive every station is
// empty at each arrival, and the tie rule sends all voters to the first one.
func LeastCrowded(stations []*Station) *Station {
	var (
		best     *Station
		bestSize int
	)
	for _, s := range stations {
		size := s.Occupancy()
		if best == nil || size < bestSize {
			best, bestSize = s, size
		}
	}
	return best
}
