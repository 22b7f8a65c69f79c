// Package api exposes the stored articles and the job triggers over HTTP.
// It is a thin read-mostly layer: all queries go straight to the store, and
// the scrape endpoints delegate to the pipeline.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
	"github.com/Vinodk-17/NewsExplorer/pkg/db"
	"github.com/Vinodk-17/NewsExplorer/pkg/ingest"
)

// Server wires the query service and the job trigger surface.
type Server struct {
	store    *db.Store
	pipeline *ingest.Pipeline
	log      *logrus.Logger
}

// NewServer assembles the HTTP layer.
func NewServer(store *db.Store, pipeline *ingest.Pipeline, log *logrus.Logger) *Server {
	return &Server{store: store, pipeline: pipeline, log: log}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.health)
	router.GET("/news", s.listNews)
	router.POST("/news/filter", s.filterNews)
	router.GET("/news/countries", s.facet(s.store.Countries))
	router.GET("/news/sources", s.facet(s.store.Sources))
	router.GET("/news/languages", s.facet(s.store.Languages))
	router.GET("/news/sentiments", s.facet(s.store.Sentiments))
	router.GET("/news/years", s.facet(s.store.Years))
	router.POST("/news/scrape", s.scrapeFeed)
	router.GET("/news/scrape_all", s.scrapeAll)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "job_state": s.pipeline.State()})
}

func (s *Server) listNews(c *gin.Context) {
	records, err := s.store.All()
	if err != nil {
		s.fail(c, "error fetching news", err)
		return
	}
	c.JSON(http.StatusOK, emptyAsList(records))
}

func (s *Server) filterNews(c *gin.Context) {
	var f db.Filter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	records, err := s.store.Query(f)
	if err != nil {
		s.fail(c, "error filtering news", err)
		return
	}
	c.JSON(http.StatusOK, emptyAsList(records))
}

func (s *Server) facet(query func() ([]string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := query()
		if err != nil {
			s.fail(c, "error fetching facet", err)
			return
		}
		if values == nil {
			values = []string{}
		}
		c.JSON(http.StatusOK, values)
	}
}

// ScrapeRequest triggers a single-feed run for an ad hoc feed URL.
type ScrapeRequest struct {
	RSSURL  string `json:"rss_url" binding:"required"`
	Country string `json:"country"`
	Agency  string `json:"agency"`
}

func (s *Server) scrapeFeed(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	batch, err := s.pipeline.RunFeed(req.RSSURL, req.Country, req.Agency)
	if errors.Is(err, ingest.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "run_in_progress", "message": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, "error scraping RSS feed", err)
		return
	}
	c.JSON(http.StatusOK, article.Records(batch))
}

func (s *Server) scrapeAll(c *gin.Context) {
	err := s.pipeline.Run(context.Background())
	if errors.Is(err, ingest.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "run_in_progress", "message": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, "error during full scrape", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scraping completed"})
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	s.log.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "service_error", "message": msg + ": " + err.Error()})
}

func emptyAsList(records []article.Record) []article.Record {
	if records == nil {
		return []article.Record{}
	}
	return records
}
