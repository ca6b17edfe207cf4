package enrich

import (
	"strings"

	"jobseek/internal/domain/job"
)

type levelRule struct {
	level string
	terms []string
}

// Rules are checked in this order; the first rule with a matching term wins.
var levelRules = []levelRule{
	{job.LevelEntry, []string{"entry", "junior", "jr", "associate"}},
	{job.LevelSenior, []string{"senior", "sr.", "lead"}},
	{job.LevelMid, []string{"mid", "intermediate"}},
	{job.LevelLead, []string{"director", "manager", "principal"}},
}

// ExperienceLevel maps free text onto Entry, Mid, Senior or Lead. Empty or
// unrecognised input is Mid.
func ExperienceLevel(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return job.LevelMid
	}
	for _, rule := range levelRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.level
			}
		}
	}
	return job.LevelMid
}
