package commands

import (
	"log"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/repositories"
	"scraper.local/instagram-curator/repositories/sessions"
)

type SessionsHandler struct {
	Db         *gorm.DB
	State      *sessions.State
	Repository *repositories.SessionsRepository
}

func NewSessionsCommand() *cli.Command {
	var h SessionsHandler
	return &cli.Command{
		Name:  "sessions",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = SessionsHandler{
				Db:    common.NewDB(),
				State: sessions.NewState(),
			}
			h.Repository = &repositories.SessionsRepository{
				Db:    h.Db,
				State: h.State,
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "warm",
				Usage: "",
				Action: func(c *cli.Context) error {
					if err := h.Warm(); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
		},
	}
}

func (h *SessionsHandler) Warm() (err error) {
	log.Println("sessions warm up...")
	h.State.EnsureWarm()
	session, err := h.Repository.Apply()
	if err != nil {
		return
	}
	log.Println("session applied", session.ID, "csrf", h.State.CurrentCsrf() != "")
	return
}
