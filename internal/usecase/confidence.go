package usecase

// Field weights for the confidence score
const (
	weightName         = 1.0
	weightDescription  = 0.5
	weightPrepTime     = 1.0
	weightCookTime     = 1.0
	weightServings     = 1.0
	weightIngredients  = 1.5
	weightInstructions = 1.5
	weightDifficulty   = 0.5

	totalWeight = weightName + weightDescription + weightPrepTime + weightCookTime +
		weightServings + weightIngredients + weightInstructions + weightDifficulty
)

// ExtractedFields records which fields an extraction pass populated.
type ExtractedFields struct {
	Name         bool
	Description  bool
	PrepTime     bool
	CookTime     bool
	Servings     bool
	Ingredients  bool
	Instructions bool
	Difficulty   bool
}

// Confidence returns the populated share of the total field weight, in [0, 1].
func Confidence(f ExtractedFields) float64 {
	achieved := 0.0
	add := func(present bool, weight float64) {
		if present {
			achieved += weight
		}
	}

	add(f.Name, weightName)
	add(f.Description, weightDescription)
	add(f.PrepTime, weightPrepTime)
	add(f.CookTime, weightCookTime)
	add(f.Servings, weightServings)
	add(f.Ingredients, weightIngredients)
	add(f.Instructions, weightInstructions)
	add(f.Difficulty, weightDifficulty)

	return achieved / totalWeight
}
