// Package pipeline orchestrates one NRFI prediction run over a day's
// schedule: resolve probable pitchers, score both rotations and lineups, and
// combine them into sorted prediction records.
package pipeline

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/radgator13/mlb-nrfi-predictor/internal/metrics"
	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
	"github.com/radgator13/mlb-nrfi-predictor/internal/scoring"
	"github.com/radgator13/mlb-nrfi-predictor/internal/statsapi"
)

// ErrNoGames signals an empty schedule for the requested date. The only
// error surfaced to the presentation layer; everything else degrades to
// defaults or a skipped game.
var ErrNoGames = errors.New("no games scheduled")

// StatsSource is the slice of the stats API the pipeline consumes
type StatsSource interface {
	FetchSchedule(ctx context.Context, date time.Time) ([]models.Game, error)
	ProbablePitchers(ctx context.Context, gameID int) (models.PitcherAssignment, error)
	CareerStats(ctx context.Context, playerID int, group string) (models.StatSnapshot, error)
	Roster(ctx context.Context, teamID int) ([]int, error)
}

// ProgressFunc receives completion updates during a run. completed/total is
// monotonically increasing and reaches 1 when the run finishes.
type ProgressFunc func(completed, total int)

// Predictor runs the prediction pipeline. Games are processed strictly
// sequentially; one game completes or is skipped before the next begins.
type Predictor struct {
	source StatsSource
	logger *logrus.Logger
	stats  *RunStats
}

// NewPredictor creates a new predictor
func NewPredictor(source StatsSource, logger *logrus.Logger) *Predictor {
	return &Predictor{
		source: source,
		logger: logger,
		stats:  NewRunStats(),
	}
}

// Run produces prediction records for every game on the given date where
// both probable pitchers are known, sorted by NRFI probability descending.
// Returns ErrNoGames when the schedule is empty or unreachable.
func (p *Predictor) Run(ctx context.Context, date time.Time, progress ProgressFunc) ([]models.PredictionRecord, error) {
	p.stats.Reset()
	startTime := time.Now()

	runLog := p.logger.WithFields(logrus.Fields{
		"run_id": uuid.New().String(),
		"date":   date.Format("2006-01-02"),
	})
	runLog.Info("Starting prediction run")

	games, err := p.source.FetchSchedule(ctx, date)
	if err != nil {
		p.stats.RecordFetchError()
		runLog.WithError(err).WithField("error_code", statsapi.ErrorCode(err)).
			Warn("Schedule fetch failed, treating as empty schedule")
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	p.stats.SetTotalGames(len(games))
	metrics.UpdateScheduledGames(float64(len(games)))

	// Roster lookups are memoized per run, not globally, so doubleheaders
	// share one fetch but nothing leaks across runs.
	rosters := make(map[int][]int)

	records := make([]models.PredictionRecord, 0, len(games))
	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, ok := p.processGame(ctx, runLog, game, rosters)
		if ok {
			records = append(records, record)
			p.stats.RecordPredicted()
			metrics.RecordGameProcessed()
			metrics.RecordPrediction(record.Prediction)
		} else {
			p.stats.RecordSkipped()
			metrics.RecordGameSkipped()
		}

		if progress != nil {
			progress(i+1, len(games))
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].NRFIProbability > records[j].NRFIProbability
	})

	p.stats.SetDuration(time.Since(startTime))
	metrics.RecordRunDuration(time.Since(startTime).Seconds())
	runLog.Infof("Prediction run complete: %s", p.stats.String())

	return records, nil
}

// Stats returns the stats of the most recent run
func (p *Predictor) Stats() *RunStats {
	return p.stats
}

// processGame resolves and scores one game. Returns ok=false when the game
// is skipped because either probable pitcher is unannounced.
func (p *Predictor) processGame(ctx context.Context, runLog *logrus.Entry, game models.Game, rosters map[int][]int) (models.PredictionRecord, bool) {
	gameLog := runLog.WithFields(logrus.Fields{
		"game_id": game.GameID,
		"matchup": game.Matchup(),
	})

	pitchers, err := p.source.ProbablePitchers(ctx, game.GameID)
	if err != nil {
		p.stats.RecordFetchError()
		gameLog.WithError(err).WithField("error_code", statsapi.ErrorCode(err)).
			Warn("Live feed fetch failed")
	}
	if !pitchers.Complete() {
		gameLog.Debug("Probable pitchers not announced, skipping game")
		return models.PredictionRecord{}, false
	}

	homePitcherScore := scoring.PitcherScore(p.careerStats(ctx, gameLog, *pitchers.HomeID, models.GroupPitching))
	awayPitcherScore := scoring.PitcherScore(p.careerStats(ctx, gameLog, *pitchers.AwayID, models.GroupPitching))

	homeHitterScore := p.teamHitterScore(ctx, gameLog, rosters, game.HomeID)
	awayHitterScore := p.teamHitterScore(ctx, gameLog, rosters, game.AwayID)

	probability := scoring.NRFIProbability(homePitcherScore, awayPitcherScore, homeHitterScore, awayHitterScore)
	label := scoring.Label(probability)

	gameLog.WithFields(logrus.Fields{
		"nrfi_probability": probability,
		"prediction":       label,
	}).Debug("Game scored")

	return models.PredictionRecord{
		GameID:           game.GameID,
		Matchup:          game.Matchup(),
		AwayPitcher:      pitchers.AwayName,
		HomePitcher:      pitchers.HomeName,
		AwayPitcherScore: round2(awayPitcherScore),
		HomePitcherScore: round2(homePitcherScore),
		AwayHitterScore:  round2(awayHitterScore),
		HomeHitterScore:  round2(homeHitterScore),
		NRFIProbability:  probability,
		Prediction:       label,
	}, true
}

// careerStats fetches one player's career stats, degrading to an empty
// snapshot (scored through league-average defaults) on any upstream failure
func (p *Predictor) careerStats(ctx context.Context, gameLog *logrus.Entry, playerID int, group string) models.StatSnapshot {
	snapshot, err := p.source.CareerStats(ctx, playerID, group)
	if err != nil {
		p.stats.RecordFetchError()
		gameLog.WithError(err).WithFields(logrus.Fields{
			"player_id":  playerID,
			"group":      group,
			"error_code": statsapi.ErrorCode(err),
		}).Warn("Career stats fetch failed, using defaults")
		return models.StatSnapshot{}
	}
	return snapshot
}

// teamHitterScore scores a team's hitters from its roster, memoizing roster
// lookups for the run. Hitters with unparseable stats are excluded from the
// average; a team with no usable hitters scores neutral.
func (p *Predictor) teamHitterScore(ctx context.Context, gameLog *logrus.Entry, rosters map[int][]int, teamID int) float64 {
	playerIDs, ok := rosters[teamID]
	if !ok {
		ids, err := p.source.Roster(ctx, teamID)
		if err != nil {
			p.stats.RecordFetchError()
			gameLog.WithError(err).WithFields(logrus.Fields{
				"team_id":    teamID,
				"error_code": statsapi.ErrorCode(err),
			}).Warn("Roster fetch failed")
		}
		rosters[teamID] = ids
		playerIDs = ids
	}

	values := make([]float64, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		snapshot := p.careerStats(ctx, gameLog, playerID, models.GroupHitting)
		value, err := scoring.HitterValue(snapshot)
		if err != nil {
			gameLog.WithField("player_id", playerID).WithError(err).
				Debug("Skipping hitter with unparseable stats")
			continue
		}
		values = append(values, value)
	}

	return scoring.TeamHitterScore(values)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
