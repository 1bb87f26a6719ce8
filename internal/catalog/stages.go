package catalog

// Stage bounds. Ordinary stats move within [-6, 6]; the critical-hit
// stage only climbs within [0, 3].
const (
	StageMin     = -6
	StageMax     = 6
	CritStageMin = 0
	CritStageMax = 3
)

// stageMultipliers maps an ordinary stat stage to the multiplier applied
// to the base stat. The table is symmetric around 1.0 at stage 0.
var stageMultipliers = map[int]float64{
	-6: 0.25,
	-5: 0.285,
	-4: 0.33,
	-3: 0.4,
	-2: 0.5,
	-1: 0.66,
	0:  1.0,
	1:  1.5,
	2:  2.0,
	3:  2.5,
	4:  3.0,
	5:  3.5,
	6:  4.0,
}

// critStageBonus is the additive percentage added to the critical-hit
// chance per crit stage.
var critStageBonus = map[int]float64{
	0: 0,
	1: 12.5,
	2: 50,
	3: 100,
}

// StageMultiplier looks up the multiplier for an ordinary stat stage.
// Out-of-range stages are clamped before lookup.
func StageMultiplier(stage int) float64 {
	return stageMultipliers[ClampStage(stage)]
}

// CritStageBonus looks up the additive crit-chance bonus for a crit stage.
func CritStageBonus(stage int) float64 {
	return critStageBonus[ClampCritStage(stage)]
}

// ClampStage forces a stage into [StageMin, StageMax].
func ClampStage(stage int) int {
	if stage < StageMin {
		return StageMin
	}
	if stage > StageMax {
		return StageMax
	}
	return stage
}

// ClampCritStage forces a crit stage into [CritStageMin, CritStageMax].
func ClampCritStage(stage int) int {
	if stage < CritStageMin {
		return CritStageMin
	}
	if stage > CritStageMax {
		return CritStageMax
	}
	return stage
}
