package sim

// automaticRunnerCorrection names the two known historical games where the
// automatic-runner prediction (made before the upstream started announcing
// it explicitly) guessed wrong, each good for exactly one extra inning.
// Kept as data rather than inlined at the dispatch site, so a
// future fix only touches this table.
type automaticRunnerCorrection struct {
	gameID          string
	inningNumber    int
	topOfInning     bool
	correctedRunner string
}

var automaticRunnerCorrections = []automaticRunnerCorrection{
	{gameID: "680b4f1d11f35e62dba3ebb2", inningNumber: 10, topOfInning: false, correctedRunner: "Victoria Persson"},
	{gameID: "6812571a17b36c4c9b40e06d", inningNumber: 10, topOfInning: false, correctedRunner: "Hassan Espinosa"},
}

// predictedAutomaticRunner returns the corrected guess for the automatic
// runner placed at the start of an extra inning when the upstream message
// itself didn't name one, or ("", false) if this game/inning has no known
// correction (the ordinary case: fall back to the stored automatic runner).
func predictedAutomaticRunner(gameID string, inningNumber int, topOfInning bool) (string, bool) {
	for _, c := range automaticRunnerCorrections {
		if c.gameID == gameID && c.inningNumber == inningNumber && c.topOfInning == topOfInning {
			return c.correctedRunner, true
		}
	}
	return "", false
}

// fallingStarCorrection fixes a single known-bad FallingStarOutcome where
// the upstream message named the wrong replacement player.
type fallingStarCorrection struct {
	gameID          string
	hitPlayer       string
	correctedPlayer string
}

var fallingStarCorrections = []fallingStarCorrection{
	{gameID: "68741e50f86033e4ba111a3f", hitPlayer: "Mia Parks", correctedPlayer: ""},
}

func correctedFallingStarReplacement(gameID, hitPlayer string) (string, bool) {
	for _, c := range fallingStarCorrections {
		if c.gameID == gameID && c.hitPlayer == hitPlayer {
			return c.correctedPlayer, true
		}
	}
	return "", false
}

// duplicateNowBattingCorrection fixes one known game where a duplicate
// NowBatting event named a batter who was not actually replaced.
type duplicateNowBattingCorrection struct {
	gameID           string
	announcedBatter  string
	treatAsUnreplaced bool
}

var duplicateNowBattingCorrections = []duplicateNowBattingCorrection{
	{gameID: "686ee660e52e01aa1b9eb7ca", announcedBatter: "Vicki Nagai", treatAsUnreplaced: false},
	{gameID: "686ee660e52e01aa1b9eb7ca", announcedBatter: "Lena Vitale", treatAsUnreplaced: true},
}

func shouldTreatDuplicateNowBattingAsUnreplaced(gameID, batterName string) bool {
	for _, c := range duplicateNowBattingCorrections {
		if c.gameID == gameID && c.announcedBatter == batterName {
			return c.treatAsUnreplaced
		}
	}
	return false
}
