package estimator

import "github.com/avet102/meal-hub/internal/unitconv"

// foodDef is one row of the offline reference table.
//
// caloriesPerUnit is per defaultUnit. specific marks unambiguous foods
// (a clearly identified item rather than a broad category); matches on
// non-specific foods never rate better than low confidence.
type foodDef struct {
	name            string
	aliases         []string
	caloriesPerUnit float64
	unit            unitconv.Unit
	defaultQty      float64
	specific        bool
	source          string
	sourceURL       string
	clarify         *Clarification
}

const usdaSource = "USDA FoodData Central"
const usdaURL = "https://fdc.nal.usda.gov"

// foodTable is scanned in order; earlier entries win when aliases are the
// same length. Aliases are matched longest-first, so "chicken breast"
// beats the generic "chicken" entry.
var foodTable = []foodDef{
	{
		name: "egg", aliases: []string{"egg", "eggs"},
		caloriesPerUnit: 78, unit: unitconv.UnitPiece, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "toast", aliases: []string{"toast"},
		caloriesPerUnit: 75, unit: unitconv.UnitSlice, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "bread", aliases: []string{"bread"},
		caloriesPerUnit: 75, unit: unitconv.UnitSlice, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "oatmeal", aliases: []string{"oatmeal", "porridge", "oats"},
		caloriesPerUnit: 158, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Was that cooked oatmeal or dry oats?",
			Options:  []string{"cooked", "dry"},
		},
	},
	{
		name: "rice", aliases: []string{"rice"},
		caloriesPerUnit: 206, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "White or brown rice, and was it cooked?",
			Options:  []string{"white cooked", "brown cooked", "uncooked"},
		},
	},
	{
		name: "chicken breast", aliases: []string{"chicken breast", "grilled chicken"},
		caloriesPerUnit: 47, unit: unitconv.UnitOz, defaultQty: 4,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "chicken", aliases: []string{"chicken"},
		caloriesPerUnit: 57, unit: unitconv.UnitOz, defaultQty: 4,
		specific: false, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Which cut of chicken was it?",
			Options:  []string{"breast", "thigh", "wing", "fried"},
		},
	},
	{
		name: "banana", aliases: []string{"banana", "bananas"},
		caloriesPerUnit: 105, unit: unitconv.UnitPiece, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "apple", aliases: []string{"apple", "apples"},
		caloriesPerUnit: 95, unit: unitconv.UnitPiece, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "milk", aliases: []string{"milk"},
		caloriesPerUnit: 122, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "What kind of milk?",
			Options:  []string{"whole", "2%", "skim", "oat", "almond"},
		},
	},
	{
		name: "coffee", aliases: []string{"coffee"},
		caloriesPerUnit: 2, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Black, or with milk and sugar?",
			Options:  []string{"black", "with milk", "with sugar", "latte"},
		},
	},
	{
		name: "yogurt", aliases: []string{"yogurt", "yoghurt"},
		caloriesPerUnit: 149, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "What kind of yogurt?",
			Options:  []string{"whole milk", "nonfat", "greek"},
		},
	},
	{
		name: "peanut butter", aliases: []string{"peanut butter"},
		caloriesPerUnit: 94, unit: unitconv.UnitTbsp, defaultQty: 2,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "butter", aliases: []string{"butter"},
		caloriesPerUnit: 102, unit: unitconv.UnitTbsp, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "cheese", aliases: []string{"cheese"},
		caloriesPerUnit: 113, unit: unitconv.UnitOz, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "pasta", aliases: []string{"pasta", "spaghetti", "noodles"},
		caloriesPerUnit: 221, unit: unitconv.UnitCup, defaultQty: 1.5,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Plain, or with sauce?",
			Options:  []string{"plain", "tomato sauce", "cream sauce"},
		},
	},
	{
		name: "pizza", aliases: []string{"pizza", "pizzas"},
		caloriesPerUnit: 285, unit: unitconv.UnitSlice, defaultQty: 2,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Thin crust or deep dish?",
			Options:  []string{"thin crust", "regular", "deep dish"},
		},
	},
	{
		name: "salad", aliases: []string{"salad", "salads"},
		caloriesPerUnit: 100, unit: unitconv.UnitServing, defaultQty: 1,
		specific: false, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "What was in the salad?",
			Options:  []string{"greens only", "with protein", "with dressing"},
		},
	},
	{
		name: "sandwich", aliases: []string{"sandwich", "sandwiches"},
		caloriesPerUnit: 300, unit: unitconv.UnitServing, defaultQty: 1,
		specific: false, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "smoothie", aliases: []string{"smoothie", "smoothies"},
		caloriesPerUnit: 200, unit: unitconv.UnitCup, defaultQty: 1.5,
		specific: false, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "soup", aliases: []string{"soup", "soups"},
		caloriesPerUnit: 120, unit: unitconv.UnitCup, defaultQty: 1.5,
		specific: false, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "orange juice", aliases: []string{"orange juice", "oj"},
		caloriesPerUnit: 112, unit: unitconv.UnitCup, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "avocado", aliases: []string{"avocado"},
		caloriesPerUnit: 234, unit: unitconv.UnitPiece, defaultQty: 0.5,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Whole avocado, or half?",
			Options:  []string{"whole", "half"},
		},
	},
	{
		name: "salmon", aliases: []string{"salmon"},
		caloriesPerUnit: 58, unit: unitconv.UnitOz, defaultQty: 4,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "steak", aliases: []string{"steak", "steaks"},
		caloriesPerUnit: 68, unit: unitconv.UnitOz, defaultQty: 6,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "potato", aliases: []string{"potato", "potatoes", "baked potato"},
		caloriesPerUnit: 161, unit: unitconv.UnitPiece, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "french fries", aliases: []string{"french fries", "fries"},
		caloriesPerUnit: 365, unit: unitconv.UnitServing, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "What size of fries?",
			Options:  []string{"small", "medium", "large"},
		},
	},
	{
		name: "cereal", aliases: []string{"cereal"},
		caloriesPerUnit: 150, unit: unitconv.UnitCup, defaultQty: 1,
		specific: false, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "Which cereal was it?",
			Options:  []string{"corn flakes", "granola", "sweetened"},
		},
	},
	{
		name: "protein shake", aliases: []string{"protein shake"},
		caloriesPerUnit: 160, unit: unitconv.UnitServing, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
	},
	{
		name: "burger", aliases: []string{"burger", "burgers", "hamburger", "cheeseburger"},
		caloriesPerUnit: 354, unit: unitconv.UnitPiece, defaultQty: 1,
		specific: true, source: usdaSource, sourceURL: usdaURL,
		clarify: &Clarification{
			Question: "With cheese?",
			Options:  []string{"plain", "with cheese"},
		},
	},
}
