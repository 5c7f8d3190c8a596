// Package heatpolicy computes heat index from temperature and humidity and
// maps the result, combined with a venue's outdoor exposure and the time of
// day, to a play/no-play decision.
package heatpolicy

import "math"

// HeatIndexF computes the apparent temperature in Fahrenheit from dry-bulb
// temperature and relative humidity (0-100), using the NWS Rothfusz
// regression with the standard low- and high-humidity adjustments. Below
// 80F the heat index is not meaningful and the function returns T unchanged.
func HeatIndexF(tempF, relHumidity float64) float64 {
	if tempF < 80 {
		return tempF
	}

	t := tempF
	rh := relHumidity

	hi := -42.379 +
		2.04901523*t +
		10.14333127*rh -
		0.22475541*t*rh -
		0.00683783*t*t -
		0.05481717*rh*rh +
		0.00122874*t*t*rh +
		0.00085282*t*rh*rh -
		0.00000199*t*t*rh*rh

	if rh < 13 && t >= 80 && t <= 112 {
		adjustment := ((13 - rh) / 4) * math.Sqrt((17-math.Abs(t-95))/17)
		hi -= adjustment
	}
	if rh > 85 && t >= 80 && t <= 87 {
		adjustment := ((rh - 85) / 10) * ((87 - t) / 5)
		hi += adjustment
	}

	return hi
}
