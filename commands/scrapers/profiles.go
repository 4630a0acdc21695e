package scrapers

import (
	"log"

	"github.com/urfave/cli/v2"

	scrapersRepositories "scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type ProfilesHandler struct {
	State      *sessions.State
	Repository *scrapersRepositories.ProfilesRepository
}

func NewProfilesCommand() *cli.Command {
	var h ProfilesHandler
	return &cli.Command{
		Name:  "profiles",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = ProfilesHandler{
				State: sessions.NewState(),
			}
			fetcher := &scrapersRepositories.FetcherRepository{
				State: h.State,
			}
			h.Repository = &scrapersRepositories.ProfilesRepository{
				State:             h.State,
				FetcherRepository: fetcher,
				ResolverRepository: &scrapersRepositories.ResolverRepository{
					State:             h.State,
					FetcherRepository: fetcher,
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

func (h *ProfilesHandler) Process(target string) (err error) {
	h.State.EnsureWarm()
	profile, err := h.Repository.Acquire(target)
	if err != nil {
		return
	}
	log.Println(
		"profile",
		profile.Handle,
		"followers", profile.FollowersCount,
		"posts", profile.PostsCount,
		"verified", profile.IsVerified,
	)
	return
}
