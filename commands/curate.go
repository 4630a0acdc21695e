package commands

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/models"
	"scraper.local/instagram-curator/repositories"
	"scraper.local/instagram-curator/repositories/analysis"
	scrapersRepositories "scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type CurateHandler struct {
	Db                *gorm.DB
	Rdb               *redis.Client
	Ctx               context.Context
	Nats              *nats.Conn
	State             *sessions.State
	Repository        *repositories.CuratorRepository
	TargetsRepository *repositories.TargetsRepository
}

func NewCurateCommand() *cli.Command {
	var h CurateHandler
	return &cli.Command{
		Name:  "curate",
		Usage: "",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "wanted",
				Value: config.IG_TIMELINE_PAGE,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 2,
			},
		},
		Before: func(c *cli.Context) error {
			h = CurateHandler{
				Db:    common.NewDB(),
				Rdb:   common.NewRedis(),
				Ctx:   context.Background(),
				Nats:  common.NewNats(),
				State: sessions.NewState(),
			}
			h.TargetsRepository = &repositories.TargetsRepository{
				Db: h.Db,
			}
			fetcher := &scrapersRepositories.FetcherRepository{
				State: h.State,
			}
			h.Repository = &repositories.CuratorRepository{
				State: h.State,
				ProfilesRepository: &scrapersRepositories.ProfilesRepository{
					State:             h.State,
					FetcherRepository: fetcher,
					ResolverRepository: &scrapersRepositories.ResolverRepository{
						State:             h.State,
						FetcherRepository: fetcher,
					},
				},
				TimelineRepository: &scrapersRepositories.TimelineRepository{
					State:             h.State,
					FetcherRepository: fetcher,
				},
				ClassifierRepository: analysis.NewClassifierRepository(),
				AccountsRepository: &repositories.AccountsRepository{
					Db:   h.Db,
					Nats: h.Nats,
				},
				PostsRepository: &repositories.PostsRepository{
					Db: h.Db,
				},
				ReportsRepository: &repositories.ReportsRepository{
					Db:   h.Db,
					Nats: h.Nats,
				},
				TargetsRepository: h.TargetsRepository,
				SessionsRepository: &repositories.SessionsRepository{
					Db:    h.Db,
					State: h.State,
				},
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				log.Fatal("targets can not be empty")
				return nil
			}
			if err := h.Process(c.Args().Slice(), c.Int("wanted"), c.Int("concurrency")); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Process runs the pipeline inline over the argument list. A semaphore
// bounds concurrent targets; one failed target never stops the rest.
func (h *CurateHandler) Process(names []string, wanted int, concurrency int) error {
	log.Println("curate processing", strconv.Itoa(len(names)), "targets")
	if concurrency < 1 {
		concurrency = 1
	}
	if wanted < 1 {
		wanted = config.IG_TIMELINE_PAGE
	}

	wg := &sync.WaitGroup{}
	semaphore := make(chan struct{}, concurrency)
	for _, name := range names {
		target, err := h.TargetsRepository.Apply(name, wanted)
		if err != nil {
			log.Println("target apply failed", name, err)
			continue
		}
		wg.Add(1)
		semaphore <- struct{}{}
		go func(target *models.Target) {
			defer wg.Done()
			defer func() { <-semaphore }()
			if _, err := h.Repository.Process(target); err != nil {
				log.Println("target process failed", target.Name, err)
			}
		}(target)
	}
	wg.Wait()
	return nil
}
