package main

import (
	"fmt"

	"github.com/msousa/jango"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	var sites []*jango.Site
	var err error

	if c.Site != "" {
		sites, err = deps.Sites.FindSites(deps.Ctx, jango.SiteFilter{Name: &c.Site})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
			return err
		}
		if len(sites) == 0 {
			return jango.Errorf(jango.ENOTFOUND, "site %q not registered", c.Site)
		}
	} else {
		sites, err = deps.Sites.FindSites(deps.Ctx, jango.SiteFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
			return err
		}
		if len(sites) == 0 {
			fmt.Fprintln(deps.Stdout, "No sites registered. Use 'jango sites add' to register one.")
			return nil
		}
	}

	var failed int
	for _, site := range sites {
		fmt.Fprintf(deps.Stdout, "Scraping %s (%s)\n", site.Name, site.BaseURL)

		stats, err := deps.Scraper.Scrape(deps.Ctx, site)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  error: %s\n", jango.ErrorMessage(err))
			continue
		}

		fmt.Fprintf(deps.Stdout, "  %d discovered, %d stored, %d skipped, %d failed\n",
			stats.Discovered, stats.Stored, stats.Skipped, stats.Failed)
	}

	if failed > 0 {
		return jango.Errorf(jango.EINTERNAL, "%d of %d sites failed", failed, len(sites))
	}
	return nil
}
