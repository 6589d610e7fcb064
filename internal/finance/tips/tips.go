// Package tips serves short financial tips chosen at random for the page the
// user is looking at.
package tips

import (
	"math/rand/v2"
	"strings"
)

type Context string

const (
	ContextSavings   Context = "savings"
	ContextInvesting Context = "investing"
	ContextBudgeting Context = "budgeting"
	ContextGeneral   Context = "general"
)

var catalog = map[Context][]string{
	ContextSavings: {
		"💡 Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings",
		"💰 Set up automatic transfers to your savings account",
		"🎯 Small regular deposits add up over time!",
	},
	ContextInvesting: {
		"📈 Consider diversifying your investment portfolio",
		"🏦 Take advantage of employer RRSP matching if available",
		"⏰ Time in the market beats timing the market",
	},
	ContextBudgeting: {
		"📝 Track every expense for a month to find saving opportunities",
		"🎮 Think of budgeting as a game - try to beat your high score!",
		"🎯 Set specific and achievable financial goals",
	},
	ContextGeneral: {
		"✨ Financial freedom is a journey, not a destination",
		"🌱 Your future self will thank you for saving today",
		"💪 Every financial decision counts - you've got this!",
	},
}

// Page names are matched case-insensitively. Both the dashboard titles and
// the API resource names are accepted.
var pageContexts = map[string]Context{
	"money buckets":          ContextInvesting,
	"buckets":                ContextInvesting,
	"monthly expenses":       ContextBudgeting,
	"expenses":               ContextBudgeting,
	"budgets":                ContextBudgeting,
	"financial health score": ContextSavings,
	"health-score":           ContextSavings,
	"goals":                  ContextSavings,
}

type Tip struct {
	Text    string  `json:"text"`
	Context Context `json:"context"`
}

// ContextFromPage maps a page name onto a tip context, defaulting to general.
func ContextFromPage(page string) Context {
	if c, ok := pageContexts[strings.ToLower(strings.TrimSpace(page))]; ok {
		return c
	}
	return ContextGeneral
}

// Picker selects tips uniformly at random.
type Picker struct {
	intN func(n int) int
}

func NewPicker() *Picker {
	return &Picker{intN: rand.IntN}
}

// Pick returns a random tip for context. Unknown contexts use the general tips
// and the returned Tip reports the context actually used.
func (p *Picker) Pick(context Context) Tip {
	list, ok := catalog[context]
	if !ok {
		context = ContextGeneral
		list = catalog[ContextGeneral]
	}
	return Tip{Text: list[p.intN(len(list))], Context: context}
}

// ForPage is Pick(ContextFromPage(page)).
func (p *Picker) ForPage(page string) Tip {
	return p.Pick(ContextFromPage(page))
}
