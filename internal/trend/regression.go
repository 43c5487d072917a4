// Package trend fits simple statistical models over goal-progress history:
// least-squares trend lines, systemic risk forecasts and outcome projection.
// Everything here is a pure function of its inputs; callers may memoize
// results per input snapshot.
package trend

import "math"

type point struct {
	x float64 // days since the first observation
	y float64 // progress pct
}

// lineFit is an ordinary least-squares fit plus the descriptive statistics
// the analyzers bucket on.
type lineFit struct {
	Slope            float64
	Intercept        float64
	Correlation      float64 // Pearson r
	ResidualVariance float64 // mean squared deviation from the fitted line
	N                int
}

// fitLine computes the OLS line and Pearson correlation for the series.
// Degenerate series (all x equal, or fewer than two points) fit as flat
// lines with zero correlation.
func fitLine(points []point) lineFit {
	n := len(points)
	fit := lineFit{N: n}
	if n < 2 {
		if n == 1 {
			fit.Intercept = points[0].y
		}
		return fit
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.x
		sumY += p.y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var covXY, varX, varY float64
	for _, p := range points {
		dx := p.x - meanX
		dy := p.y - meanY
		covXY += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 {
		fit.Intercept = meanY
		return fit
	}

	fit.Slope = covXY / varX
	fit.Intercept = meanY - fit.Slope*meanX

	if varY > 0 {
		fit.Correlation = covXY / math.Sqrt(varX*varY)
	}

	var residuals float64
	for _, p := range points {
		r := p.y - (fit.Intercept + fit.Slope*p.x)
		residuals += r * r
	}
	fit.ResidualVariance = residuals / float64(n)
	return fit
}

func (f lineFit) at(x float64) float64 {
	return f.Intercept + f.Slope*x
}

func clampProgress(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
