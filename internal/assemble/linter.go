package assemble

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/aepsite/internal/frontmatter"
	"git.home.luguber.info/inful/aepsite/internal/markdown"
)

// LinterRule is one rule page of the protobuf linter.
type LinterRule struct {
	AEP      string
	Title    string
	Slug     string
	Filename string
	// Body is the rule text with its frontmatter removed.
	Body string
}

// ReadLinterRule loads the rule at path, which documents a rule of aep.
func ReadLinterRule(path, aep string) (LinterRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return LinterRule{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	_, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return LinterRule{}, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	title, err := markdown.Title(body)
	if err != nil {
		return LinterRule{}, fmt.Errorf("%w: %w", ErrTitle, err)
	}
	name := filepath.Base(path)
	return LinterRule{
		AEP:      aep,
		Title:    title,
		Slug:     strings.TrimSuffix(name, filepath.Ext(name)),
		Filename: name,
		Body:     string(body),
	}, nil
}

// RuleSet is every linter rule documenting one AEP.
type RuleSet struct {
	AEP   string
	Rules []LinterRule
}

// Consolidate groups rules by AEP. Sets are ordered by numeric AEP and rules
// by file name.
func Consolidate(rules []LinterRule) []RuleSet {
	index := map[string]int{}
	var sets []RuleSet
	for _, r := range rules {
		i, ok := index[r.AEP]
		if !ok {
			i = len(sets)
			index[r.AEP] = i
			sets = append(sets, RuleSet{AEP: r.AEP})
		}
		sets[i].Rules = append(sets[i].Rules, r)
	}
	for i := range sets {
		slices.SortFunc(sets[i].Rules, func(a, b LinterRule) int { return cmp.Compare(a.Filename, b.Filename) })
	}
	slices.SortFunc(sets, func(a, b RuleSet) int {
		an, aerr := strconv.Atoi(a.AEP)
		bn, berr := strconv.Atoi(b.AEP)
		if aerr == nil && berr == nil && an != bn {
			return cmp.Compare(an, bn)
		}
		return cmp.Compare(a.AEP, b.AEP)
	})
	return sets
}

// Render produces the consolidated page: one collapsed details block per rule.
func (rs RuleSet) Render() ([]byte, error) {
	blocks := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		blocks = append(blocks, fmt.Sprintf("<details>\n<summary>%s</summary>\n%s\n</details>\n", r.Title, r.Body))
	}
	body := strings.Join(blocks, "\n") + "\n"
	return frontmatter.Render(map[string]any{"title": fmt.Sprintf("AEP-%s Linter Rules", rs.AEP)}, []byte(body))
}

// RulePage is the site link of rs's consolidated page.
func (rs RuleSet) RulePage() string {
	return "tooling/linter/rules/" + rs.AEP
}
