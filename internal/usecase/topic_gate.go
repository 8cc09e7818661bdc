package usecase

import (
	"regexp"
	"strings"
)

// Rule is one entry in the topic gate tables: a compiled pattern and the
// category it belongs to.
type Rule struct {
	Pattern  *regexp.Regexp
	Category string
}

type rawRule struct {
	pattern  string
	category string
}

// Queries steering the corpus into clinical, advice, cross-tradition or
// contemporary territory are refused outright, no matter what retrieval
// would find.
var bannedRules = compileRules([]rawRule{
	{`\bdepression\b`, "clinical"},
	{`\banxiety\b`, "clinical"},
	{`\btherapy\b`, "clinical"},
	{`\btreat(ment)?\b`, "clinical"},
	{`\bpsychiatr(y|ic)\b`, "clinical"},
	{`\bpsycholog(y|ical)\b`, "clinical"},
	{`\bdiagnos(e|is)\b`, "clinical"},
	{`\bcope\b`, "clinical"},
	{`\bheal(ing)?\b`, "clinical"},
	{`\bwell[- ]?being\b`, "clinical"},

	{`\bwhat should i do\b`, "advice"},
	{`\bshould i\b`, "advice"},
	{`\bhelp me\b`, "advice"},
	{`\bovercome\b`, "advice"},
	{`\bsteps\b`, "advice"},
	{`\badvice\b`, "advice"},

	{`\bcompare\b`, "comparison"},
	{`\bvs\b`, "comparison"},
	{`\bversus\b`, "comparison"},
	{`\bstoic(ism)?\b`, "comparison"},
	{`\bbuddh(ism|ist)\b`, "comparison"},
	{`\bchristianity\b`, "comparison"},
	{`\bislam\b`, "comparison"},
	{`\bhindu(ism)?\b`, "comparison"},

	{`\bai\b`, "modern"},
	{`\bartificial intelligence\b`, "modern"},
	{`\bsocial media\b`, "modern"},
	{`\bclimate change\b`, "modern"},
	{`\btwitter\b`, "modern"},
	{`\btiktok\b`, "modern"},
	{`\binstagram\b`, "modern"},
	{`\bchatgpt\b`, "modern"},
})

// A query must touch the corpus vocabulary somewhere: the named thinkers
// or the movement's technical terms.
var allowedRules = compileRules([]rawRule{
	{`\bexistential(ism|ist)?\b`, "movement"},
	{`\bsartre\b`, "thinker"},
	{`\bjean[- ]paul\b`, "thinker"},
	{`\bbeauvoir\b`, "thinker"},
	{`\bsimone\b`, "thinker"},
	{`\bcamus\b`, "thinker"},
	{`\bheidegger\b`, "thinker"},
	{`\bhusserl\b`, "thinker"},
	{`\bmerleau[- ]ponty\b`, "thinker"},
	{`\bjaspers\b`, "thinker"},

	{`\bexistence\b`, "vocabulary"},
	{`\bexist\b`, "vocabulary"},
	{`\bto exist\b`, "vocabulary"},
	{`\bbeing\b`, "vocabulary"},
	{`\bessence\b`, "vocabulary"},

	{`\bbad faith\b`, "concept"},
	{`\bmauvaise foi\b`, "concept"},
	{`\bexistence precedes essence\b`, "concept"},
	{`\bfreedom\b`, "concept"},
	{`\bresponsibilit(y|ies)\b`, "concept"},
	{`\bauthentic(ity)?\b`, "concept"},
	{`\banguish\b`, "concept"},
	{`\babandonment\b`, "concept"},
	{`\bfor[- ]itself\b`, "concept"},
	{`\bin[- ]itself\b`, "concept"},
})

func compileRules(raw []rawRule) []Rule {
	rules := make([]Rule, len(raw))
	for i, r := range raw {
		rules[i] = Rule{
			Pattern:  regexp.MustCompile(r.pattern),
			Category: r.category,
		}
	}
	return rules
}

// TopicGate decides whether a query is in-domain before any retrieval
// happens. Pure function over static pattern tables.
type TopicGate struct {
	banned  []Rule
	allowed []Rule
}

// NewTopicGate returns a gate over the default rule tables.
func NewTopicGate() *TopicGate {
	return &TopicGate{
		banned:  bannedRules,
		allowed: allowedRules,
	}
}

// IsRefused reports whether the query must be refused: any banned match
// is decisive, and absence of any allowed-domain match is decisive.
func (g *TopicGate) IsRefused(query string) bool {
	if _, banned := g.MatchBanned(query); banned {
		return true
	}
	return !g.InAllowedDomain(query)
}

// MatchBanned returns the category of the first banned pattern the query
// matches.
func (g *TopicGate) MatchBanned(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, rule := range g.banned {
		if rule.Pattern.MatchString(q) {
			return rule.Category, true
		}
	}
	return "", false
}

// InAllowedDomain reports whether the query matches at least one
// allowed-domain pattern.
func (g *TopicGate) InAllowedDomain(query string) bool {
	q := strings.ToLower(query)
	for _, rule := range g.allowed {
		if rule.Pattern.MatchString(q) {
			return true
		}
	}
	return false
}

// BannedRules exposes the banned table for rule-by-rule tests.
func (g *TopicGate) BannedRules() []Rule { return g.banned }

// AllowedRules exposes the allowed table for rule-by-rule tests.
func (g *TopicGate) AllowedRules() []Rule { return g.allowed }
