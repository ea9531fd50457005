package model

import "fmt"

// DriverRecord represents one driver row of the "drivers" JSON.
// Every field except Name is numeric; missing fields decode to zero.
type DriverRecord struct {
	Name           string  `json:"name"`
	StartPos       float64 `json:"startPos"`
	FinishPos      float64 `json:"finishPos"`
	Diff           float64 `json:"diff"`
	Races          float64 `json:"races"`
	Sprints        float64 `json:"sprints"`
	Laps           float64 `json:"laps"`
	Wins           float64 `json:"wins"`
	SprintWins     float64 `json:"sprintWins"`
	Podiums        float64 `json:"podiums"`
	Pole           float64 `json:"pole"`
	SprintPole     float64 `json:"sprintPole"`
	FastLaps       float64 `json:"fastLaps"`
	SprintFastLaps float64 `json:"sprintFastLaps"`
	Outs           float64 `json:"outs"`
	Dsq            float64 `json:"dsq"`
	SprintOuts     float64 `json:"sprintOuts"`
	Points         float64 `json:"points"`
}

// BattlePair represents one head-to-head qualifying comparison of the
// "driversbattles" JSON. Pair is formatted as "DriverA vs DriverB".
type BattlePair struct {
	Pair       string  `json:"pair"`
	QualScore1 float64 `json:"qualScore_1"`
	QualScore2 float64 `json:"qualScore_2"`
}

// PitstopRecord represents one entry of the "pitstops" JSON.
type PitstopRecord struct {
	Driver string  `json:"driver"`
	Team   string  `json:"team"`
	Time   float64 `json:"time"` // seconds
}

type DatasetFailure struct {
	Resource string `json:"resource"`
	Cause    string `json:"cause"`
}

func (df DatasetFailure) String() string {
	return fmt.Sprintf("  ▸ Dataset: %s\n  ▸ Cause: %s", df.Resource, df.Cause)
}
