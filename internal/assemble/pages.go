package assemble

import (
	"fmt"

	"git.home.luguber.info/inful/aepsite/internal/frontmatter"
	"git.home.luguber.info/inful/aepsite/internal/markdown"
)

// Page renders a plain markdown page. The title comes from the first
// level-one heading unless title is set; the heading is removed either way.
func Page(content []byte, title string) ([]byte, string, error) {
	if title == "" {
		t, err := markdown.Title(content)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrTitle, err)
		}
		title = t
	}
	body := markdown.RemoveTitle(string(content))
	out, err := frontmatter.Render(map[string]any{"title": title}, []byte("\n"+body))
	if err != nil {
		return nil, "", err
	}
	return out, title, nil
}
