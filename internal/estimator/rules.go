package estimator

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/avet102/meal-hub/internal/unitconv"
)

// Estimate parses free-form meal text into a calorie breakdown using the
// offline reference table. It is pure and deterministic: identical input
// always yields an identical result, which the estimate cache and tests
// rely on.
func Estimate(text string) FoodEstimate {
	tokens := tokenize(text)
	matches := findMatches(tokens)

	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, buildItem(m, tokens))
	}

	total := 0
	overall := ""
	hasLow := false
	for _, it := range items {
		total += it.Calories
		if overall == "" {
			overall = it.Confidence
		} else {
			overall = weakest(overall, it.Confidence)
		}
		if it.Confidence == ConfidenceLow {
			hasLow = true
		}
	}
	if len(items) == 0 {
		overall = ConfidenceLow
	}

	var tips []string
	if len(items) == 0 {
		tips = append(tips, `Nothing recognized yet — try naming foods with amounts, like "2 eggs and a slice of toast".`)
	} else if hasLow {
		tips = append(tips, "Add amounts or be more specific to tighten the estimate.")
	}

	return FoodEstimate{
		Items:         items,
		TotalCalories: total,
		Confidence:    overall,
		Tips:          tips,
	}
}

// NeedsClarification flags inputs where a matched food has materially
// different calorie profiles depending on an unspecified attribute.
// Advisory only — it never blocks estimation. Returns nil when nothing
// needs asking.
func NeedsClarification(text string) *Clarification {
	tokens := tokenize(text)
	lowered := strings.ToLower(text)

	for _, m := range findMatches(tokens) {
		c := m.food.clarify
		if c == nil {
			continue
		}
		if optionAlreadySpecified(lowered, c.Options) {
			continue
		}
		return &Clarification{
			MatchedFood: m.food.name,
			Question:    c.Question,
			Options:     append([]string(nil), c.Options...),
		}
	}
	return nil
}

// optionAlreadySpecified reports whether the text already mentions a word
// from any clarification option, in which case the question is moot.
func optionAlreadySpecified(lowered string, options []string) bool {
	for _, opt := range options {
		for _, word := range strings.Fields(strings.ToLower(opt)) {
			if strings.Contains(lowered, word) {
				return true
			}
		}
	}
	return false
}

type match struct {
	food  *foodDef
	start int
	end   int // token index just past the alias
}

// findMatches scans tokens left to right. At each position the longest
// matching alias wins; ties resolve by table order. Matches never overlap.
func findMatches(tokens []string) []match {
	var matches []match

	for i := 0; i < len(tokens); {
		var best *foodDef
		bestLen := 0
		for fi := range foodTable {
			f := &foodTable[fi]
			for _, alias := range f.aliases {
				parts := strings.Fields(alias)
				if len(parts) <= bestLen || i+len(parts) > len(tokens) {
					continue
				}
				ok := true
				for j, p := range parts {
					if tokens[i+j] != p {
						ok = false
						break
					}
				}
				if ok {
					best = f
					bestLen = len(parts)
				}
			}
		}
		if best != nil {
			matches = append(matches, match{food: best, start: i, end: i + bestLen})
			i += bestLen
			continue
		}
		i++
	}

	return matches
}

// buildItem infers quantity and unit from tokens preceding the match and
// assigns a confidence level per the rules:
//
//	high   — explicit quantity (+ unit where one applies) on a specific food
//	medium — default serving or bare count for a clearly identified food
//	low    — generic category match, or a quantity that had to be guessed
func buildItem(m match, tokens []string) Item {
	f := m.food
	qty, unit, hasQty, hasUnit := inferQuantity(tokens, m.start)

	quantity := f.defaultQty
	confidence := ConfidenceMedium
	note := ""

	if hasQty {
		quantity = qty
	}

	// "oz" reads as weight, but against a volume-measured food it almost
	// always means fluid ounces ("8 oz of milk").
	if hasUnit && unit == unitconv.UnitOz && !unitconv.Compatible(unit, f.unit) &&
		unitconv.Compatible(unitconv.UnitFlOz, f.unit) {
		unit = unitconv.UnitFlOz
	}

	if hasUnit && unit != f.unit {
		switch {
		case unitconv.Compatible(unit, f.unit):
			quantity = unitconv.Convert(quantity, unit, f.unit)
		case unitconv.IsCount(unit) && unitconv.IsCount(f.unit):
			// "2 pieces of pizza" — treat the count as counting the
			// reference unit directly.
		default:
			// Explicit unit that cannot map onto the reference unit.
			// Treat each as one default serving and flag it.
			quantity = qty * f.defaultQty
			confidence = ConfidenceLow
			note = "could not convert " + string(unit) + " to " + string(f.unit) + "; assumed default servings"
		}
	}

	if note == "" {
		switch {
		case !f.specific:
			confidence = ConfidenceLow
			note = "matched a generic category"
		case hasQty && (hasUnit || unitconv.IsCount(f.unit)):
			confidence = ConfidenceHigh
		case hasQty:
			confidence = ConfidenceMedium
			note = "assumed " + string(f.unit) + " as the unit"
		default:
			confidence = ConfidenceMedium
			note = "assumed default serving"
		}
	}

	return Item{
		Food:            f.name,
		Quantity:        quantity,
		Unit:            f.unit,
		CaloriesPerUnit: f.caloriesPerUnit,
		Calories:        int(math.Round(f.caloriesPerUnit * quantity)),
		Confidence:      confidence,
		ConfidenceNote:  note,
		Source:          f.source,
		SourceURL:       f.sourceURL,
	}
}

// fillerWords are skipped when scanning backwards for quantity tokens.
var fillerWords = map[string]bool{"of": true, "the": true, "some": true}

// inferQuantity scans backwards from the matched food for the patterns
// "<qty> <food>", "<qty> <unit> [of] <food>" and "<unit> [of] <food>".
func inferQuantity(tokens []string, start int) (qty float64, unit unitconv.Unit, hasQty, hasUnit bool) {
	i := start - 1
	for i >= 0 && fillerWords[tokens[i]] {
		i--
	}
	if i < 0 {
		return 0, "", false, false
	}

	if u, ok := unitconv.Parse(tokens[i]); ok {
		unit = u
		hasUnit = true
		i--
		for i >= 0 && fillerWords[tokens[i]] {
			i--
		}
		if i >= 0 {
			if q, ok := parseQuantity(tokens[i]); ok {
				return q, unit, true, true
			}
		}
		// Bare unit word: one of it, but the quantity was not explicit.
		return 1, unit, false, true
	}

	if q, ok := parseQuantity(tokens[i]); ok {
		return q, "", true, false
	}

	return 0, "", false, false
}

var numberWords = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"half": 0.5, "couple": 2, "few": 3, "dozen": 12,
}

// parseQuantity recognizes numerals ("2", "1.5"), simple fractions
// ("1/2") and small number words ("two", "a", "half").
func parseQuantity(tok string) (float64, bool) {
	if v, ok := numberWords[tok]; ok {
		return v, true
	}

	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN == nil && errD == nil && d > 0 {
			return n / d, true
		}
		return 0, false
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v <= 0 || v > 10000 {
		return 0, false
	}
	return v, true
}

// tokenize lowercases and splits text into word tokens. "/", "." and "%"
// are kept inside tokens so "1/2", "1.5" and "2%" survive.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		// Trim sentence punctuation that got glued on ("toast." → "toast").
		tok := strings.Trim(b.String(), "./")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		b.Reset()
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '/' || r == '.' || r == '%' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
