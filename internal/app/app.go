// Package app wires the web client's collaborators from configuration.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"newsum/internal/api"
	"newsum/internal/config"
	"newsum/internal/preview"
	redisdb "newsum/internal/redis"
	"newsum/internal/summarizer"
	"newsum/internal/view"
)

// NewDeps builds the summarizer client, view store and preview fetcher.
func NewDeps(cfg *config.Config) api.Deps {
	client := summarizer.NewClientFromConfig(cfg)
	log.Printf("[Main] summarize API: %s", client.Endpoint())

	deps := api.Deps{
		Summarizer:  client,
		Store:       view.NewStore(redisdb.NewClient(cfg), time.Duration(cfg.View.TTLMinutes)*time.Minute),
		PreviewWait: time.Duration(cfg.Preview.WaitMillis) * time.Millisecond,
	}
	// Only assign a non-nil fetcher: a typed nil would defeat the nil check in api.
	if f := preview.NewFetcherFromConfig(cfg); f != nil {
		deps.Preview = f
	} else {
		log.Printf("[Main] article preview disabled in config")
	}
	return deps
}

// NewServer returns the router and the address it should listen on.
func NewServer(cfg *config.Config) (*gin.Engine, string) {
	r := api.SetupRouter(cfg, NewDeps(cfg))
	return r, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
}
