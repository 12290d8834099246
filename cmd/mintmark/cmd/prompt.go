package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mintmark/mintmark/pkg/importer"
	"github.com/mintmark/mintmark/pkg/resolver"
)

// prompter asks import questions on the terminal. It implements both the
// resolver's Confirmer and the importer's Decider.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// Confirm implements resolver.Confirmer with a y/N question.
func (p *prompter) Confirm(_ context.Context, question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Decide implements importer.Decider with a replace/ignore/cancel question.
// A capitalized answer applies the decision to the whole batch.
func (p *prompter) Decide(_ context.Context, prompt importer.DuplicatePrompt) (importer.Decision, bool) {
	fmt.Fprintf(p.out, "%q is already in the collection (catalog id %d).\n", prompt.Title, prompt.ExternalID)
	for {
		fmt.Fprint(p.out, "[r]eplace, [i]gnore, [c]ancel batch? Capitalize R/I to apply to all: ")
		line, err := p.in.ReadString('\n')
		if err != nil {
			return importer.DecisionCancel, false
		}

		answer := strings.TrimSpace(line)
		all := answer == "R" || answer == "I"
		switch strings.ToLower(answer) {
		case "r", "replace":
			return importer.DecisionReplace, all
		case "i", "ignore":
			return importer.DecisionIgnore, all
		case "c", "cancel":
			return importer.DecisionCancel, false
		}
	}
}

var _ resolver.Confirmer = (*prompter)(nil)
var _ importer.Decider = (*prompter)(nil)
