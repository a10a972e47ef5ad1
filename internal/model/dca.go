package model

// CyclePhase is a market-cycle classification derived from drawdown depth,
// position relative to SMA200, and recent momentum.
type CyclePhase string

const (
	PhaseAccumulation CyclePhase = "accumulation"
	PhaseMarkup       CyclePhase = "markup"
	PhaseDistribution CyclePhase = "distribution"
	PhaseMarkdown     CyclePhase = "markdown"
)

// DCAGrade rates how favorable the current price is for accumulation.
type DCAGrade string

const (
	GradeStrongBuy  DCAGrade = "strongBuy" // score >= 75
	GradeBuy        DCAGrade = "buy"       // score >= 55
	GradeHold       DCAGrade = "hold"      // score >= 35
	GradeOvervalued DCAGrade = "overvalued"
)

// PriceZone is a [Low, High] price band.
type PriceZone struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// PriceZones are the four accumulation bands over the observed price range.
type PriceZones struct {
	StrongBuy  PriceZone `json:"strong_buy"`
	Buy        PriceZone `json:"buy"`
	Hold       PriceZone `json:"hold"`
	Overvalued PriceZone `json:"overvalued"`
}

// DCAAnalysis is the full DCA-zone result for one asset.
type DCAAnalysis struct {
	CurrentPrice            float64    `json:"current_price"`
	VWAP                    float64    `json:"vwap"`
	Support                 float64    `json:"support"`
	Resistance              float64    `json:"resistance"`
	ATH                     float64    `json:"ath"`
	ATL                     float64    `json:"atl"`
	DrawdownFromATH         float64    `json:"drawdown_from_ath"` // percent, <= 0
	CyclePhase              CyclePhase `json:"cycle_phase"`
	CurrentGrade            DCAGrade   `json:"current_grade"`
	DCARecommendedPrice     float64    `json:"dca_recommended_price"`
	Zones                   PriceZones `json:"zones"`
	VolumeAccumulationPrice float64    `json:"volume_accumulation_price"`
	GradeConfidence         float64    `json:"grade_confidence"` // 0-100
}
