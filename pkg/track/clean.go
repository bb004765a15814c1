package track

// Logger receives advisory messages.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
}

const (
	// minOutlierSpeed is the speed (km/h) below which a sample is never discarded.
	minOutlierSpeed = 30.0
	// burstSpeed is the speed (km/h) above which the lookahead window is used.
	burstSpeed = 90.0
	// outlierRatio is how much faster reaching a sample must be than skipping it.
	outlierRatio = 3.0
	// lookahead is the number of raw samples considered when skipping a burst.
	lookahead = 5
)

// Clean removes lonely outliers from a sorted track: a sample that is much
// faster to reach from the last kept sample than the samples after it.
// The first and last samples are always kept. The input is not modified.
func Clean(t Track, log Logger) Track {
	if log != nil {
		log.Infof("discarding bad points from %d location samples ...", len(t))
	}
	if len(t) == 0 {
		return Track{}
	}

	kept := make(Track, 0, len(t))
	for i, s := range t {
		if i > 0 && i < len(t)-1 {
			last := kept[len(kept)-1]
			keep := SpeedKMH(last, s)

			var discard float64
			if keep < burstSpeed {
				discard = SpeedKMH(last, t[i+1])
			} else {
				end := min(i+1+lookahead, len(t))
				discard = SpeedKMH(last, t[i+1])
				for j := i + 2; j < end; j++ {
					discard = min(discard, SpeedKMH(last, t[j]))
				}
			}

			if keep > minOutlierSpeed && keep > outlierRatio*discard {
				continue
			}
		}
		kept = append(kept, s)
	}

	if n := len(t) - len(kept); n > 0 && log != nil {
		log.Warningf("discarded %d/%d (%.2f%%) location samples", n, len(t), 100*float64(n)/float64(len(t)))
	}
	return kept
}
