package follower

// Record captures one processed frame: what was seen and what was commanded.
type Record struct {
	Frame     int     `json:"frame"`
	ElapsedUs int64   `json:"elapsed_us"`
	Segments  int     `json:"segments"`
	Lateral   float64 `json:"lateral_error"`
	Heading   float64 `json:"heading_error"`
	Command   Command `json:"command"`
}

// Summary aggregates one pipeline run.
type Summary struct {
	Frames     int     `json:"frames"`
	Dropped    int     `json:"dropped"`
	Detected   int     `json:"detected"`
	MeanAbsErr float64 `json:"mean_abs_error"`
}

// DetectionRatio is the fraction of processed frames with at least one
// segment.
func (s Summary) DetectionRatio() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Detected) / float64(s.Frames)
}

// add folds one record into the running aggregate. errSum carries the
// numerator for MeanAbsErr between calls.
func (s *Summary) add(r Record, errSum *float64) {
	s.Frames++
	if r.Segments > 0 {
		s.Detected++
		*errSum += abs(r.Lateral)
		s.MeanAbsErr = *errSum / float64(s.Detected)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
