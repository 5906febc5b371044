package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kublaj/drizzle-builder/pkg/patterns"
)

var (
	collectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	idStyle         = lipgloss.NewStyle().Faint(true)
	hiddenStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// useColor reports whether styled output should be emitted
func useColor(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printTree writes the collection/pattern tree in display order
func printTree(out io.Writer, tree *patterns.Tree, showHidden bool) {
	color := useColor(out)
	styled := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	_ = tree.WalkCollections(func(_ *patterns.Namespace, c *patterns.Collection) error {
		fmt.Fprintf(out, "%s %s\n",
			styled(collectionStyle, c.Name),
			styled(idStyle, "("+c.ID+")"))

		for _, p := range c.Patterns {
			fmt.Fprintf(out, "  %s %s\n", p.Name, styled(idStyle, "("+p.ID+")"))
		}
		if showHidden {
			for _, p := range hiddenPatterns(c) {
				fmt.Fprintf(out, "  %s %s\n",
					styled(hiddenStyle, p.Name),
					styled(idStyle, "("+p.ID+", hidden)"))
			}
		}
		return nil
	})
}

// hiddenPatterns returns the items excluded from the Patterns view
func hiddenPatterns(c *patterns.Collection) []*patterns.Pattern {
	var hidden []*patterns.Pattern
	for _, p := range c.Items {
		if p.Hidden {
			hidden = append(hidden, p)
		}
	}
	sort.Slice(hidden, func(i, j int) bool { return hidden[i].ID < hidden[j].ID })
	return hidden
}
