// Package scoring implements the pure heuristic scoring functions and the
// NRFI probability model. No I/O happens here; callers feed in raw stat
// snapshots and collect bounded scores.
package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
)

// NeutralScore is the fallback when a pitcher's stat line cannot be parsed
// at all. Note the asymmetry: a stat line where every field is merely absent
// scores through the formula with league-average defaults (which evaluates to
// 0 after clamping), while a present-but-unparseable field short-circuits to
// 50. Both behaviors are intentional and covered by tests.
const NeutralScore = 50.0

// League-average baselines used as defaults for absent fields
const (
	defaultERA = 5.0
	defaultK9  = 6.0
	defaultBB9 = 3.0

	defaultAVG = 0.250
	defaultOBP = 0.320
	defaultSLG = 0.400
)

// Hand-tuned weights, not regression output
const (
	eraWeight = 12.0
	k9Weight  = 8.0
	bb9Weight = 5.0

	avgWeight = 100.0
	obpWeight = 80.0
	slgWeight = 60.0
)

// Logistic model parameters: model_input = 25 maps to 50%
const (
	hitterDamping  = 0.3
	logisticSlope  = 0.1
	logisticCenter = 25.0
)

// Prediction label thresholds on the NRFI probability
const (
	nrfiThreshold = 60.0
	yrfiThreshold = 40.0
)

// ErrUnparseableStat indicates a stat field was present but not numeric
var ErrUnparseableStat = errors.New("unparseable stat value")

// PitcherScore maps a pitcher's career stat snapshot to a score in [0, 100].
// Lower ERA, higher strikeout rate and lower walk rate each push the score up
// linearly from the league-average baseline.
func PitcherScore(stat models.StatSnapshot) float64 {
	era, err := statValue(stat, "era", defaultERA)
	if err != nil {
		return NeutralScore
	}
	k9, err := statValue(stat, "strikeoutsPer9Inn", defaultK9)
	if err != nil {
		return NeutralScore
	}
	bb9, err := statValue(stat, "walksPer9Inn", defaultBB9)
	if err != nil {
		return NeutralScore
	}

	score := (defaultERA-era)*eraWeight + (k9-defaultK9)*k9Weight + (defaultBB9-bb9)*bb9Weight
	return clamp(score, 0, 100)
}

// HitterValue maps one hitter's career stat snapshot to a value in [0, 100].
// A present but unparseable field returns an error; callers exclude that
// player from the team average rather than default-scoring them.
func HitterValue(stat models.StatSnapshot) (float64, error) {
	avg, err := statValue(stat, "avg", defaultAVG)
	if err != nil {
		return 0, err
	}
	obp, err := statValue(stat, "obp", defaultOBP)
	if err != nil {
		return 0, err
	}
	slg, err := statValue(stat, "slg", defaultSLG)
	if err != nil {
		return 0, err
	}

	value := (avg-defaultAVG)*avgWeight + (obp-defaultOBP)*obpWeight + (slg-defaultSLG)*slgWeight
	return clamp(value, 0, 100), nil
}

// TeamHitterScore is the arithmetic mean over the successfully scored hitters
// of one team. With no usable hitters the team scores neutral.
func TeamHitterScore(values []float64) float64 {
	if len(values) == 0 {
		return NeutralScore
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// NRFIProbability combines the four scores into a probability in [0, 100]
// that neither team scores in the first inning. The averaged pitcher score,
// dampened by the averaged hitter score, is pushed through a logistic curve
// centered at 25. Rounded to 2 decimal places.
func NRFIProbability(homePitcher, awayPitcher, homeHitters, awayHitters float64) float64 {
	avgPitch := (homePitcher + awayPitcher) / 2
	avgHit := (homeHitters + awayHitters) / 2

	modelInput := avgPitch - avgHit*hitterDamping
	probability := 100 / (1 + math.Exp(-logisticSlope*(modelInput-logisticCenter)))

	return math.Round(probability*100) / 100
}

// Label maps an NRFI probability to its categorical prediction
func Label(probability float64) string {
	switch {
	case probability > nrfiThreshold:
		return models.LabelNRFI
	case probability < yrfiThreshold:
		return models.LabelYRFI
	default:
		return models.LabelTossUp
	}
}

// statValue reads one stat field, substituting the default when the field is
// absent and returning ErrUnparseableStat when it is present but not numeric.
func statValue(stat models.StatSnapshot, key string, def float64) (float64, error) {
	raw, ok := stat[key]
	if !ok || raw == nil {
		return def, nil
	}
	return coerceFloat(key, raw)
}

// coerceFloat converts the loosely typed values the upstream API emits
// (strings like ".250" or "3.12", JSON numbers) to float64
func coerceFloat(key string, raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrUnparseableStat, key, v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrUnparseableStat, key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrUnparseableStat, key, raw)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
