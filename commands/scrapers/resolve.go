package scrapers

import (
	"log"

	"github.com/urfave/cli/v2"

	scrapersRepositories "scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type ResolveHandler struct {
	State      *sessions.State
	Repository *scrapersRepositories.ResolverRepository
}

func NewResolveCommand() *cli.Command {
	var h ResolveHandler
	return &cli.Command{
		Name:  "resolve",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = ResolveHandler{
				State: sessions.NewState(),
			}
			h.Repository = &scrapersRepositories.ResolverRepository{
				State: h.State,
				FetcherRepository: &scrapersRepositories.FetcherRepository{
					State: h.State,
				},
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			target := c.Args().Get(0)
			if target == "" {
				log.Fatal("target can not be empty")
				return nil
			}
			if err := h.Process(target); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

func (h *ResolveHandler) Process(target string) (err error) {
	h.State.EnsureWarm()
	handle, err := h.Repository.Resolve(target)
	if err != nil {
		return
	}
	log.Println("target resolved", target, "->", handle)
	return
}
