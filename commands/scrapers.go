package commands

import (
	"github.com/urfave/cli/v2"

	"scraper.local/instagram-curator/commands/scrapers"
)

func NewScrapersCommand() *cli.Command {
	return &cli.Command{
		Name:  "scrapers",
		Usage: "",
		Subcommands: []*cli.Command{
			scrapers.NewResolveCommand(),
			scrapers.NewProfilesCommand(),
			scrapers.NewTimelineCommand(),
		},
	}
}
