package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
)

// MockStatsSource mocks the stats API for pipeline tests
type MockStatsSource struct {
	mock.Mock
}

func (m *MockStatsSource) FetchSchedule(ctx context.Context, date time.Time) ([]models.Game, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockStatsSource) ProbablePitchers(ctx context.Context, gameID int) (models.PitcherAssignment, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(models.PitcherAssignment), args.Error(1)
}

func (m *MockStatsSource) CareerStats(ctx context.Context, playerID int, group string) (models.StatSnapshot, error) {
	args := m.Called(ctx, playerID, group)
	if args.Get(0) == nil {
		return models.StatSnapshot{}, args.Error(1)
	}
	return args.Get(0).(models.StatSnapshot), args.Error(1)
}

func (m *MockStatsSource) Roster(ctx context.Context, teamID int) ([]int, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func intPtr(i int) *int {
	return &i
}

// TestRunEmptySchedule tests the explicit no-games signal
func TestRunEmptySchedule(t *testing.T) {
	source := new(MockStatsSource)
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return([]models.Game{}, nil)

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), nil)

	assert.ErrorIs(t, err, ErrNoGames)
	assert.Nil(t, records)
}

// TestRunScheduleFetchFailureDegradesToNoGames tests that an unreachable
// schedule endpoint surfaces as the no-games signal, not a fatal error
func TestRunScheduleFetchFailureDegradesToNoGames(t *testing.T) {
	source := new(MockStatsSource)
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	predictor := NewPredictor(source, testLogger())
	_, err := predictor.Run(context.Background(), time.Now(), nil)

	assert.ErrorIs(t, err, ErrNoGames)

	_, _, _, fetchErrors := predictor.Stats().Snapshot()
	assert.Equal(t, 1, fetchErrors)
}

// TestRunSkipsGamesWithoutBothPitchers runs the two-game scenario: game A has
// both probable pitchers announced, game B only the home side. Exactly one
// record is emitted and skipped+emitted covers the whole schedule.
func TestRunSkipsGamesWithoutBothPitchers(t *testing.T) {
	source := new(MockStatsSource)

	games := []models.Game{
		{GameID: 1001, Away: "Boston Red Sox", Home: "New York Yankees", HomeID: 147, AwayID: 111},
		{GameID: 1002, Away: "Chicago Cubs", Home: "St. Louis Cardinals", HomeID: 138, AwayID: 112},
	}
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(games, nil)

	source.On("ProbablePitchers", mock.Anything, 1001).Return(models.PitcherAssignment{
		HomeID:   intPtr(500),
		AwayID:   intPtr(501),
		HomeName: "Gerrit Cole",
		AwayName: "Brayan Bello",
	}, nil)
	// Away pitcher not announced for game B
	source.On("ProbablePitchers", mock.Anything, 1002).Return(models.PitcherAssignment{
		HomeID:   intPtr(502),
		HomeName: "Sonny Gray",
		AwayName: "N/A",
	}, nil)

	source.On("CareerStats", mock.Anything, 500, models.GroupPitching).Return(models.StatSnapshot{
		"era": "3.00", "strikeoutsPer9Inn": "9.0", "walksPer9Inn": "2.0",
	}, nil)
	source.On("CareerStats", mock.Anything, 501, models.GroupPitching).Return(models.StatSnapshot{
		"era": "4.50", "strikeoutsPer9Inn": "7.0", "walksPer9Inn": "3.0",
	}, nil)

	source.On("Roster", mock.Anything, 147).Return([]int{600}, nil)
	source.On("Roster", mock.Anything, 111).Return([]int{601}, nil)
	source.On("CareerStats", mock.Anything, 600, models.GroupHitting).Return(models.StatSnapshot{
		"avg": ".270", "obp": ".340", "slg": ".440",
	}, nil)
	source.On("CareerStats", mock.Anything, 601, models.GroupHitting).Return(models.StatSnapshot{
		"avg": ".250", "obp": ".320", "slg": ".400",
	}, nil)

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), nil)
	require.NoError(t, err)

	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, 1001, record.GameID)
	assert.Equal(t, "Boston Red Sox @ New York Yankees", record.Matchup)
	assert.Equal(t, "Gerrit Cole", record.HomePitcher)
	assert.Equal(t, "Brayan Bello", record.AwayPitcher)
	assert.GreaterOrEqual(t, record.NRFIProbability, 0.0)
	assert.LessOrEqual(t, record.NRFIProbability, 100.0)
	assert.Contains(t, []string{models.LabelNRFI, models.LabelYRFI, models.LabelTossUp}, record.Prediction)

	totalGames, predicted, skipped, _ := predictor.Stats().Snapshot()
	assert.Equal(t, 2, totalGames)
	assert.Equal(t, 1, predicted)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, totalGames, predicted+skipped)

	// Game B's pitcher and rosters must never be fetched
	source.AssertNotCalled(t, "CareerStats", mock.Anything, 502, models.GroupPitching)
	source.AssertNotCalled(t, "Roster", mock.Anything, 138)
	source.AssertNotCalled(t, "Roster", mock.Anything, 112)
}

// TestRunMemoizesRostersPerRun verifies a doubleheader fetches each team's
// roster once
func TestRunMemoizesRostersPerRun(t *testing.T) {
	source := new(MockStatsSource)

	games := []models.Game{
		{GameID: 2001, Away: "Cleveland Guardians", Home: "Detroit Tigers", HomeID: 116, AwayID: 114},
		{GameID: 2002, Away: "Cleveland Guardians", Home: "Detroit Tigers", HomeID: 116, AwayID: 114},
	}
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(games, nil)

	source.On("ProbablePitchers", mock.Anything, mock.Anything).Return(models.PitcherAssignment{
		HomeID:   intPtr(700),
		AwayID:   intPtr(701),
		HomeName: "Tarik Skubal",
		AwayName: "Tanner Bibee",
	}, nil)
	source.On("CareerStats", mock.Anything, mock.Anything, models.GroupPitching).Return(models.StatSnapshot{}, nil)
	source.On("Roster", mock.Anything, 116).Return([]int{800}, nil).Once()
	source.On("Roster", mock.Anything, 114).Return([]int{801}, nil).Once()
	source.On("CareerStats", mock.Anything, mock.Anything, models.GroupHitting).Return(models.StatSnapshot{}, nil)

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), nil)
	require.NoError(t, err)

	assert.Len(t, records, 2)
	source.AssertNumberOfCalls(t, "Roster", 2)
}

// TestRunProgressIsMonotonic verifies the progress callback covers every
// game, including skipped ones, and never goes backwards
func TestRunProgressIsMonotonic(t *testing.T) {
	source := new(MockStatsSource)

	games := []models.Game{
		{GameID: 3001, Away: "A", Home: "B", HomeID: 1, AwayID: 2},
		{GameID: 3002, Away: "C", Home: "D", HomeID: 3, AwayID: 4},
		{GameID: 3003, Away: "E", Home: "F", HomeID: 5, AwayID: 6},
	}
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(games, nil)
	// No probable pitchers anywhere: every game is skipped but still advances
	// the progress indicator
	source.On("ProbablePitchers", mock.Anything, mock.Anything).Return(models.PitcherAssignment{
		HomeName: "N/A", AwayName: "N/A",
	}, nil)

	var updates []int
	progress := func(completed, total int) {
		assert.Equal(t, 3, total)
		updates = append(updates, completed)
	}

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), progress)
	require.NoError(t, err)

	assert.Empty(t, records)
	require.Equal(t, []int{1, 2, 3}, updates)

	totalGames, predicted, skipped, _ := predictor.Stats().Snapshot()
	assert.Equal(t, 3, totalGames)
	assert.Equal(t, 0, predicted)
	assert.Equal(t, 3, skipped)
}

// TestRunSortsByProbabilityDescending pits a dominant pitching matchup
// against a weak one and expects the stronger matchup ranked first
func TestRunSortsByProbabilityDescending(t *testing.T) {
	source := new(MockStatsSource)

	games := []models.Game{
		{GameID: 4001, Away: "Weak Away", Home: "Weak Home", HomeID: 10, AwayID: 11},
		{GameID: 4002, Away: "Strong Away", Home: "Strong Home", HomeID: 12, AwayID: 13},
	}
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(games, nil)

	source.On("ProbablePitchers", mock.Anything, 4001).Return(models.PitcherAssignment{
		HomeID: intPtr(900), AwayID: intPtr(901), HomeName: "Weak One", AwayName: "Weak Two",
	}, nil)
	source.On("ProbablePitchers", mock.Anything, 4002).Return(models.PitcherAssignment{
		HomeID: intPtr(902), AwayID: intPtr(903), HomeName: "Strong One", AwayName: "Strong Two",
	}, nil)

	weak := models.StatSnapshot{"era": "6.50", "strikeoutsPer9Inn": "5.0", "walksPer9Inn": "4.5"}
	strong := models.StatSnapshot{"era": "2.20", "strikeoutsPer9Inn": "11.0", "walksPer9Inn": "1.8"}
	source.On("CareerStats", mock.Anything, 900, models.GroupPitching).Return(weak, nil)
	source.On("CareerStats", mock.Anything, 901, models.GroupPitching).Return(weak, nil)
	source.On("CareerStats", mock.Anything, 902, models.GroupPitching).Return(strong, nil)
	source.On("CareerStats", mock.Anything, 903, models.GroupPitching).Return(strong, nil)

	source.On("Roster", mock.Anything, mock.Anything).Return([]int{1000}, nil)
	source.On("CareerStats", mock.Anything, 1000, models.GroupHitting).Return(models.StatSnapshot{
		"avg": ".260", "obp": ".330", "slg": ".420",
	}, nil)

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), nil)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 4002, records[0].GameID)
	assert.Greater(t, records[0].NRFIProbability, records[1].NRFIProbability)
}

// TestRunDegradesStatFailuresToDefaults verifies an unreachable stats
// endpoint still produces a record scored from defaults
func TestRunDegradesStatFailuresToDefaults(t *testing.T) {
	source := new(MockStatsSource)

	games := []models.Game{
		{GameID: 5001, Away: "Away", Home: "Home", HomeID: 20, AwayID: 21},
	}
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return(games, nil)
	source.On("ProbablePitchers", mock.Anything, 5001).Return(models.PitcherAssignment{
		HomeID: intPtr(1100), AwayID: intPtr(1101), HomeName: "H", AwayName: "A",
	}, nil)
	source.On("CareerStats", mock.Anything, mock.Anything, models.GroupPitching).Return(nil, assert.AnError)
	source.On("Roster", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	predictor := NewPredictor(source, testLogger())
	records, err := predictor.Run(context.Background(), time.Now(), nil)
	require.NoError(t, err)

	require.Len(t, records, 1)
	record := records[0]
	// Defaulted pitcher stat lines evaluate to 0, empty rosters to neutral 50
	assert.Equal(t, 0.0, record.HomePitcherScore)
	assert.Equal(t, 0.0, record.AwayPitcherScore)
	assert.Equal(t, 50.0, record.HomeHitterScore)
	assert.Equal(t, 50.0, record.AwayHitterScore)

	_, _, _, fetchErrors := predictor.Stats().Snapshot()
	assert.Equal(t, 4, fetchErrors)
}

// TestRunContextCancellation verifies a cancelled context aborts the run
func TestRunContextCancellation(t *testing.T) {
	source := new(MockStatsSource)
	source.On("FetchSchedule", mock.Anything, mock.Anything).Return([]models.Game{
		{GameID: 6001, Away: "A", Home: "B", HomeID: 1, AwayID: 2},
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	predictor := NewPredictor(source, testLogger())
	_, err := predictor.Run(ctx, time.Now(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
