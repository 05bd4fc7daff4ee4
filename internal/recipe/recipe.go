// Package recipe holds the fixed banana bread recipe the checklists index into.
package recipe

type Ingredient struct {
	Name   string
	Amount string
	Unit   string
	Sub    string
}

type Step struct {
	Title    string
	Text     string
	Critical bool
	// AIPrompt is the question sent for a step tip. Empty means the step
	// offers no tip.
	AIPrompt string
}

var Ingredients = []Ingredient{
	{Name: "Eggs (Large, Room Temp)", Amount: "2", Sub: "Flax eggs"},
	{Name: "Buttermilk", Amount: "1/3", Unit: "cup", Sub: "Milk + 1tsp vinegar"},
	{Name: "Vegetable Oil", Amount: "1/2", Unit: "cup", Sub: "Melted butter or applesauce"},
	{Name: "Mashed Bananas", Amount: "1", Unit: "cup", Sub: "Approx 2-3 very ripe bananas"},
	{Name: "Vanilla Extract", Amount: "1", Unit: "tsp"},
	{Name: "White Sugar", Amount: "1 1/2", Unit: "cups", Sub: "Brown sugar (use less)"},
	{Name: "All-Purpose Flour", Amount: "1 3/4", Unit: "cups", Sub: "Bread flour"},
	{Name: "Baking Soda", Amount: "1", Unit: "tsp"},
	{Name: "Salt", Amount: "1/2", Unit: "tsp"},
}

var Steps = []Step{
	{
		Title:    "Prep Bananas",
		Text:     "Mash thoroughly in a separate bowl. Measure exactly 1 cup.",
		AIPrompt: "Why is it important to measure exactly 1 cup of mashed bananas for banana bread? What happens if I use too much?",
	},
	{
		Title:    "Liquids First",
		Text:     "Remove pan from machine. Install paddle. Pour in: Oil, Buttermilk, Beaten Eggs, Vanilla, and Mashed Bananas.",
		Critical: true,
		AIPrompt: "Why must I put liquid ingredients first in an Amazon Basics bread machine? What happens if I put flour first?",
	},
	{
		Title:    "Dry Ingredients",
		Text:     "Add gently on top: Sugar, Flour, Salt, Baking Soda. (Make a small well for the soda).",
		AIPrompt: "Why should I keep baking soda away from the wet ingredients until mixing starts in a quick bread?",
	},
	{
		Title:    "Select Program",
		Text:     "Place pan in machine. Lock it. Select Program 9 (CAKE).",
		Critical: true,
		AIPrompt: "Why should I use the 'Cake' setting instead of 'Quick Bread' for banana bread in an Amazon Basics machine?",
	},
	{
		Title:    "Scrape Down",
		Text:     "After 5-10 mins of mixing, use a spatula to scrape flour from the corners of the pan.",
		Critical: true,
		AIPrompt: "Why is scraping the corners necessary for bread machine quick breads compared to yeast breads?",
	},
	{
		Title:    "Bake & Check",
		Text:     "When done, do the toothpick test. If wet, use Program 13 (Bake) for 10-15 more mins.",
		Critical: true,
		AIPrompt: "My banana bread is still wet in the middle after the cycle. Why does this happen and how does the 'Bake' only cycle fix it?",
	},
	{
		Title: "Cool",
		Text:  "Remove with mitts. Cool in pan 10 mins, then transfer to wire rack.",
	},
}

// Banana counts accepted by the batching check.
const (
	MinBananas     = 1
	MaxBananas     = 6
	DefaultBananas = 3
)

// RequiresBatching reports whether the banana count exceeds one machine load
// (max 3.5 cups flour), so the recipe must be made as two loaves.
func RequiresBatching(bananas int) bool {
	return bananas >= 4 && bananas <= MaxBananas
}

// HasTip reports whether step i exists and offers a tip.
func HasTip(i int) bool {
	return i >= 0 && i < len(Steps) && Steps[i].AIPrompt != ""
}
