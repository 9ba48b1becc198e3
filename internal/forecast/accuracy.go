package forecast

import "github.com/julianstephens/ballast/internal/models"

// estimateAccuracy rates the prediction by history depth. With no history at
// all the estimate drops to coin-flip territory and data quality is poor;
// otherwise accuracy starts at 0.75 and gains up to 0.2 across a year of
// history, with confidence at 90% of accuracy.
func estimateAccuracy(history []models.MonthlySnapshot) (accuracy, confidence float64, quality models.DataQuality) {
	months := len(history)
	if months == 0 {
		return 0.5, 0.6, models.QualityPoor
	}

	capped := months
	if capped > 12 {
		capped = 12
	}
	accuracy = 0.75 + 0.2*float64(capped)/12
	confidence = accuracy * 0.9

	switch {
	case months >= 6:
		quality = models.QualityExcellent
	case months >= 3:
		quality = models.QualityGood
	default:
		quality = models.QualityFair
	}
	return accuracy, confidence, quality
}
