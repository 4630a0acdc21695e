package commands

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories"
)

type TargetsHandler struct {
	Db         *gorm.DB
	Repository *repositories.TargetsRepository
}

func NewTargetsCommand() *cli.Command {
	var h TargetsHandler
	return &cli.Command{
		Name:  "targets",
		Usage: "",
		Before: func(c *cli.Context) error {
			h = TargetsHandler{
				Db: common.NewDB(),
			}
			h.Repository = &repositories.TargetsRepository{
				Db: h.Db,
			}
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:  "apply",
				Usage: "",
				Action: func(c *cli.Context) error {
					name := c.Args().Get(0)
					if name == "" {
						log.Fatal("target can not be empty")
						return nil
					}
					wanted, _ := strconv.Atoi(c.Args().Get(1))
					if err := h.Apply(name, wanted); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "",
				Action: func(c *cli.Context) error {
					path := c.Args().Get(0)
					if path == "" {
						log.Fatal("targets file can not be empty")
						return nil
					}
					wanted, _ := strconv.Atoi(c.Args().Get(1))
					if err := h.Import(path, wanted); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
		},
	}
}

func (h *TargetsHandler) Apply(name string, wanted int) (err error) {
	log.Println("targets apply", name)
	if wanted < 1 {
		wanted = config.IG_TIMELINE_PAGE
	}
	target, err := h.Repository.Apply(name, wanted)
	if err != nil {
		return
	}
	log.Println("target applied", target.ID, target.Name)
	return
}

// Import registers one target per line; blank lines and # comments are
// skipped.
func (h *TargetsHandler) Import(path string, wanted int) (err error) {
	log.Println("targets import", path)
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	if wanted < 1 {
		wanted = config.IG_TIMELINE_PAGE
	}

	var count int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if _, err = h.Repository.Apply(name, wanted); err != nil {
			return
		}
		count++
	}
	if err = scanner.Err(); err != nil {
		return
	}
	log.Println("targets imported", count)
	return
}
