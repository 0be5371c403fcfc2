package scoring

import (
	"fmt"

	"pulseboard/internal/model"
)

// CalculateResponseRate returns participation against the roster. A zero
// roster yields a zero rate; pending is not clamped.
func CalculateResponseRate(totalEmployees, totalResponses int) (model.ResponseRate, error) {
	if totalEmployees < 0 || totalResponses < 0 {
		return model.ResponseRate{}, fmt.Errorf("employees %d, responses %d: %w", totalEmployees, totalResponses, ErrOutOfRange)
	}
	if totalEmployees == 0 {
		return model.ResponseRate{Responded: totalResponses}, nil
	}

	return model.ResponseRate{
		Rate:      float64(roundRatio(1000*totalResponses, totalEmployees)) / 10,
		Responded: totalResponses,
		Pending:   totalEmployees - totalResponses,
	}, nil
}
