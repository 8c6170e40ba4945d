package main

import (
	"fmt"

	"github.com/msousa/jango"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Answerer.Answer(deps.Ctx, &jango.Query{Question: c.Question})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nFontes:")
		for i, src := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  [%d] %s (%s)\n", i+1, src.Title, src.URL)
		}
	}

	if answer.Tier != jango.TierFull {
		fmt.Fprintf(deps.Stderr, "note: answered in %s mode\n", answer.Tier)
	}

	return nil
}
