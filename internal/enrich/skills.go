package enrich

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxExplicitSkills  = 15
	maxDerivedSkills   = 10
	indicatorWindow    = 200
	minSkillLen        = 2
	minDerivedSkillLen = 3
	maxSkillLen        = 50
)

var (
	explicitSplitRe = regexp.MustCompile(`[,;|\n\r]+`)
	sectionSplitRe  = regexp.MustCompile(`[,;.\n\r]+`)
	fillerRe        = regexp.MustCompile(`(?i)^(and|or|the|a|an|in|with|using)\s+`)
)

// ExtractSkills runs the tiers in order and returns the first non-empty
// result: the explicit skills list, then indicator phrases in the
// description, then the common vocabulary.
func ExtractSkills(skillsDesc, description string) []string {
	if s := SkillsFromList(skillsDesc); len(s) > 0 {
		return s
	}
	if s := SkillsFromIndicators(description); len(s) > 0 {
		return s
	}
	return SkillsFromVocabulary(description)
}

// SkillsFromList splits an explicit skills field on , ; | and newlines.
func SkillsFromList(skillsDesc string) []string {
	out := []string{}
	if strings.TrimSpace(skillsDesc) == "" {
		return out
	}
	for _, part := range explicitSplitRe.Split(skillsDesc, -1) {
		s := strings.TrimSpace(part)
		if !lengthOK(s, minSkillLen) {
			continue
		}
		out = append(out, capitalize(s))
		if len(out) >= maxExplicitSkills {
			break
		}
	}
	return out
}

// SkillsFromIndicators looks at the text following the first occurrence of
// each indicator phrase and keeps the short fragments found there.
func SkillsFromIndicators(description string) []string {
	out := []string{}
	if description == "" {
		return out
	}
	seen := map[string]struct{}{}

	for _, phrase := range indicatorPhrases {
		idx := indexFold(description, phrase)
		if idx < 0 {
			continue
		}
		start := idx + len(phrase)
		section := window(description, start, indicatorWindow)

		for _, part := range sectionSplitRe.Split(section, -1) {
			s := strings.TrimSpace(part)
			if !lengthOK(s, minDerivedSkillLen) {
				continue
			}
			s = capitalize(strings.TrimSpace(fillerRe.ReplaceAllString(s, "")))
			if utf8.RuneCountInString(s) < minDerivedSkillLen {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			if len(out) >= maxDerivedSkills {
				return out
			}
		}
	}
	return out
}

// SkillsFromVocabulary returns vocabulary terms mentioned anywhere in the
// description, in vocabulary order.
func SkillsFromVocabulary(description string) []string {
	out := []string{}
	if description == "" {
		return out
	}
	lower := strings.ToLower(description)
	seen := map[string]struct{}{}
	for _, term := range commonTerms {
		if _, dup := seen[term]; dup {
			continue
		}
		if !strings.Contains(lower, strings.ToLower(term)) {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
		if len(out) >= maxDerivedSkills {
			break
		}
	}
	return out
}

func lengthOK(s string, min int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= maxSkillLen
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// indexFold is strings.Index with ASCII case folding; offsets stay valid in
// the original string, which strings.ToLower does not guarantee.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

// window returns up to limit runes of s starting at byte offset start.
func window(s string, start, limit int) string {
	if start >= len(s) {
		return ""
	}
	rest := s[start:]
	end := 0
	for i := 0; i < limit && end < len(rest); i++ {
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
	}
	return rest[:end]
}
