package resampler

import (
	"fmt"
	"strings"

	resampling "github.com/tphakala/go-audio-resampler"
)

type Quality uint8

const (
	QualityUndefined = Quality(iota)
	QualityQuick
	QualityLow
	QualityMedium
	QualityHigh
	QualityVeryHigh
	EndOfQuality
)

func (q Quality) String() string {
	switch q {
	case QualityUndefined:
		return "undefined"
	case QualityQuick:
		return "quick"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityVeryHigh:
		return "veryhigh"
	default:
		return fmt.Sprintf("unknown_quality_%d", uint8(q))
	}
}

func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for candidate := QualityUndefined + 1; candidate < EndOfQuality; candidate++ {
		if candidate.String() == s {
			*q = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown resampler quality '%s'", s)
}

func (q Quality) preset() (resampling.QualityPreset, error) {
	switch q {
	case QualityQuick:
		return resampling.QualityQuick, nil
	case QualityLow:
		return resampling.QualityLow, nil
	case QualityMedium:
		return resampling.QualityMedium, nil
	case QualityHigh, QualityUndefined:
		return resampling.QualityHigh, nil
	case QualityVeryHigh:
		return resampling.QualityVeryHigh, nil
	default:
		return 0, fmt.Errorf("unknown resampler quality: %s", q)
	}
}
