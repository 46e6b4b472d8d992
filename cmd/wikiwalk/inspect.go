package main

import (
	"fmt"

	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/walk"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	title := wikiwalk.Title(c.Title).Canonical()

	doc, err := deps.Fetcher.FetchPage(deps.Ctx, title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
		return err
	}

	flavor := deps.Detector.Detect(doc.HTML)
	flavorName := string(flavor)
	if flavor == wikiwalk.FlavorUnknown {
		flavorName = "(unknown)"
	}

	locator := deps.Locators.GetForDocument(doc)
	region, err := locator.Locate(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "title:   %s\n", doc.Title.Display())
	fmt.Fprintf(deps.Stdout, "flavor:  %s\n", flavorName)
	fmt.Fprintf(deps.Stdout, "locator: %s\n", locator.Name())
	fmt.Fprintf(deps.Stdout, "blocks:  %d\n", region.Blocks)

	if c.Links {
		links, err := deps.Extractor.ScanLinks(region, doc.Title)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
			return err
		}

		fmt.Fprintln(deps.Stdout)
		for _, link := range links {
			rank := "  -"
			if link.Rank > 0 {
				rank = fmt.Sprintf("%3d", link.Rank)
			}
			fmt.Fprintf(deps.Stdout, "%s  %-13s  %s\n",
				rank, link.Context, walk.TruncateTitle(string(link.Title), 60))
		}
	}

	if c.Markdown {
		md, err := deps.Converter.Convert(region.ContentHTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, md)
	}

	return nil
}
