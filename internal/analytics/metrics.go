// Package analytics is the pure metrics engine: stateless formulas over
// already-ingested counting stats. Nothing here touches storage; inputs are
// primitive numbers and outputs are primitive numbers, which is what keeps
// the engine testable independent of the persistence layer.
//
// All percentage results are on the 0-100 scale, rounded to one decimal.
package analytics

import (
	"math"
	"strconv"
	"strings"
)

// Formula weights shared across the engine.
const (
	// FTAttemptWeight is the standard possession-estimator weight for free
	// throw attempts.
	FTAttemptWeight = 0.44
	// ThreePointWeight credits the extra value of a made three in eFG%.
	ThreePointWeight = 0.5
)

// SafeDivide is the universal zero-denominator guard: it returns def when
// the denominator is zero.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// SafePercentage returns 100*n/d rounded to one decimal, 0 when d is zero.
func SafePercentage(numerator, denominator float64) float64 {
	return round1(SafeDivide(numerator*100, denominator, 0))
}

// ParseMinutes converts an "MM:SS" display string (or a plain numeric
// string) to decimal minutes. Unparseable or zero forms yield 0.0.
func ParseMinutes(minutes string) float64 {
	minutes = strings.TrimSpace(minutes)
	if minutes == "" || minutes == "0" || minutes == "00:00" || minutes == "0:00" {
		return 0.0
	}

	if strings.Contains(minutes, ":") {
		parts := strings.Split(minutes, ":")
		if len(parts) != 2 {
			return 0.0
		}
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0.0
		}
		secs, err := strconv.Atoi(parts[1])
		if err != nil || secs < 0 || secs >= 60 {
			return 0.0
		}
		return float64(mins) + float64(secs)/60.0
	}

	f, err := strconv.ParseFloat(minutes, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// Possessions estimates possessions used: FGA + 0.44*FTA - OREB + TOV.
func Possessions(fga, fta, oreb, tov int) float64 {
	return float64(fga) + FTAttemptWeight*float64(fta) - float64(oreb) + float64(tov)
}

// OffensiveRating is points scored per 100 possessions.
func OffensiveRating(points int, possessions float64) float64 {
	return Per100Possessions(float64(points), possessions)
}

// PointsPerPossession is points scored per possession.
func PointsPerPossession(points int, possessions float64) float64 {
	return SafeDivide(float64(points), possessions, 0)
}

// TrueShootingPct is scoring efficiency accounting for the value of twos,
// threes and free throws: 100 * PTS / (2*(FGA + 0.44*FTA)).
func TrueShootingPct(points, fga, fta int) float64 {
	denominator := 2 * (float64(fga) + FTAttemptWeight*float64(fta))
	return round1(SafeDivide(float64(points)*100, denominator, 0))
}

// EffectiveFGPct is FG% crediting made threes: 100 * (FGM + 0.5*3PM) / FGA.
func EffectiveFGPct(fgm, tpm, fga int) float64 {
	return SafePercentage(float64(fgm)+ThreePointWeight*float64(tpm), float64(fga))
}

// Efficiency is the linear player-efficiency index:
// (PTS+REB+AST+STL+BLK) - ((FGA-FGM)+(FTA-FTM)+TOV).
func Efficiency(points, reb, ast, stl, blk, fgm, fga, ftm, fta, tov int) int {
	return points + reb + ast + stl + blk - (fga - fgm) - (fta - ftm) - tov
}

// GameScore is Hollinger's single-game performance index.
func GameScore(points, fgm, fga, ftm, fta, oreb, dreb, stl, ast, blk, pf, tov int) float64 {
	score := float64(points) +
		0.4*float64(fgm) -
		0.7*float64(fga) -
		0.4*float64(fta-ftm) +
		0.7*float64(oreb) +
		0.3*float64(dreb) +
		float64(stl) +
		0.7*float64(ast) +
		0.7*float64(blk) -
		0.4*float64(pf) -
		float64(tov)
	return round1(score)
}

// TwoPointStats splits two-point makes, attempts and percentage out of the
// overall field-goal numbers. 3PM is a subset of FGM, 3PA of FGA.
func TwoPointStats(fgm, fga, tpm, tpa int) (made, attempts int, pct float64) {
	made = fgm - tpm
	attempts = fga - tpa
	pct = SafePercentage(float64(made), float64(attempts))
	return made, attempts, pct
}

// FreeThrowRate is free throw attempts per field goal attempt, 0-100.
func FreeThrowRate(fta, fga int) float64 {
	return SafePercentage(float64(fta), float64(fga))
}

// AssistTurnoverRatio guards the zero-turnover case by returning the raw
// assist count.
func AssistTurnoverRatio(ast, tov int) float64 {
	return SafeDivide(float64(ast), float64(tov), float64(ast))
}

// OffensiveReboundPct is the share of a player's rebounds that came on the
// offensive glass, 0-100.
func OffensiveReboundPct(oreb, reb int) float64 {
	return SafePercentage(float64(oreb), float64(reb))
}

// UsagePct is the share of team possessions used by a player, 0-100.
func UsagePct(possessions, teamPossessions float64) float64 {
	return SafePercentage(possessions, teamPossessions)
}

// Per100Possessions normalizes a counting stat to a 100-possession basis.
func Per100Possessions(value, possessions float64) float64 {
	return SafeDivide(value*100, possessions, 0)
}

// Per100Minutes normalizes a counting stat to a 100-minute basis.
func Per100Minutes(value, minutes float64) float64 {
	return SafeDivide(value*100, minutes, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
