package main

import (
	"fmt"
	"strings"

	"github.com/msousa/jango"
)

// Run executes the sites add command.
func (c *SitesAddCmd) Run(deps *Dependencies) error {
	site := &jango.Site{
		Name:            c.Name,
		BaseURL:         c.URL,
		ContentSelector: c.Selector,
		Filter:          strings.Join(c.Filter, "\n"),
	}

	if err := deps.Sites.CreateSite(deps.Ctx, site); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", c.Name, site.ID)
	return nil
}

// Run executes the sites list command.
func (c *SitesListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, jango.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites registered. Use 'jango sites add' to register one.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.Name, s.BaseURL)
	}

	return nil
}

// Run executes the sites delete command.
func (c *SitesDeleteCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, jango.SiteFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}
	if len(sites) == 0 {
		return jango.Errorf(jango.ENOTFOUND, "site %q not registered", c.Name)
	}

	if err := deps.Sites.DeleteSite(deps.Ctx, sites[0].ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jango.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %q and its documents\n", c.Name)
	return nil
}
