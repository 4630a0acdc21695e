package scrapers

import (
	"log"
	"strconv"

	"github.com/urfave/cli/v2"

	"scraper.local/instagram-curator/config"
	scrapersRepositories "scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type TimelineHandler struct {
	State              *sessions.State
	Repository         *scrapersRepositories.TimelineRepository
	ProfilesRepository *scrapersRepositories.ProfilesRepository
}

func NewTimelineCommand() *cli.Command {
	var h TimelineHandler
	return &cli.Command{
		Name:  "timeline",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = TimelineHandler{
				State: sessions.NewState(),
			}
			fetcher := &scrapersRepositories.FetcherRepository{
				State: h.State,
			}
			h.Repository = &scrapersRepositories.TimelineRepository{
				State:             h.State,
				FetcherRepository: fetcher,
			}
			h.ProfilesRepository = &scrapersRepositories.ProfilesRepository{
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
			wanted, _ := strconv.Atoi(c.Args().Get(1))
			if wanted < 1 {
				wanted = config.IG_TIMELINE_PAGE
			}
			if err := h.Process(target, wanted); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

func (h *TimelineHandler) Process(target string, wanted int) (err error) {
	h.State.EnsureWarm()
	profile, err := h.ProfilesRepository.Acquire(target)
	if err != nil {
		return
	}
	posts := h.Repository.Collect(profile, wanted)
	log.Println("timeline collected", profile.Handle, "posts", len(posts))
	for _, post := range posts {
		views := 0
		if post.Views != nil {
			views = *post.Views
		}
		log.Println(
			post.Shortcode,
			"likes", post.Likes,
			"comments", post.Comments,
			"views", views,
			"video", post.IsVideo,
		)
	}
	return
}
