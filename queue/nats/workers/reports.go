package workers

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
)

type ReportCreatePayload struct {
	ID       string `json:"ID"`
	Target   string `json:"Target"`
	Handle   string `json:"Handle"`
	Score    int    `json:"Score"`
	Grade    string `json:"Grade"`
	Approved bool   `json:"Approved"`
	Error    string `json:"Error"`
}

type Reports struct {
	NatsContext *common.NatsContext
}

func NewReports(natsContext *common.NatsContext) *Reports {
	return &Reports{
		NatsContext: natsContext,
	}
}

func (h *Reports) Subscribe() error {
	h.NatsContext.Conn.Subscribe(config.NATS_REPORTS_CREATE, h.Apply)
	return nil
}

func (h *Reports) Apply(m *nats.Msg) {
	var payload *ReportCreatePayload
	json.Unmarshal(m.Data, &payload)
	if payload == nil || payload.ID == "" {
		return
	}
	if payload.Error != "" {
		log.Println("report failure", payload.Target, payload.Error)
		return
	}
	if payload.Approved {
		log.Println("report approved", payload.Handle, "score", payload.Score, "grade", payload.Grade)
	}
}
