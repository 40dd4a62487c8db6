// The server exposes the release documentation flow over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/menghanl/release-doc-gen/adf"
	"github.com/menghanl/release-doc-gen/internal/config"
	"github.com/menghanl/release-doc-gen/internal/logging"
	"github.com/menghanl/release-doc-gen/notes"
	"github.com/menghanl/release-doc-gen/release"
)

var configPath = flag.String("config", "release-doc-gen.yaml", "path of the yaml config file")

type previewRequest struct {
	Body    *string        `json:"body"`
	Tickets []notes.Ticket `json:"tickets"`
}

type previewResponse struct {
	Mode        notes.Mode     `json:"mode"`
	Records     []notes.Record `json:"records"`
	Description *adf.Document  `json:"description"`
}

type releaseResponse struct {
	Tag         string         `json:"tag"`
	Date        string         `json:"date"`
	Mode        notes.Mode     `json:"mode"`
	Records     []notes.Record `json:"records"`
	Notes       *notes.Notes   `json:"notes"`
	Description *adf.Document  `json:"description"`
	IssueKey    string         `json:"issue_key,omitempty"`
}

func newRouter(r *release.Runner) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery())

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// preview runs the pipeline on a posted body without calling github or the
	// tracker. Tickets, if given, stand in for the tracker's answer.
	e.POST("/preview", func(c *gin.Context) {
		var req previewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Body == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
			return
		}
		doc, err := adf.NewBuilder(r.Config).Build(*req.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		recs, mode := notes.NewSynthesizer(r.Config).Synthesize(*req.Body, req.Tickets)
		if recs == nil {
			recs = []notes.Record{}
		}
		c.JSON(http.StatusOK, previewResponse{Mode: mode, Records: recs, Description: doc})
	})

	e.GET("/release/:tag", func(c *gin.Context) {
		res, err := r.Run(c.Request.Context(), release.Options{
			Tag:         c.Param("tag"),
			CreateIssue: c.Query("issue") == "1",
		})
		switch {
		case errors.Is(err, release.ErrMissingTag), errors.Is(err, adf.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, releaseResponse{
			Tag:         res.Tag,
			Date:        res.Date,
			Mode:        res.Mode,
			Records:     res.Records,
			Notes:       res.Notes,
			Description: res.Description,
			IssueKey:    res.IssueKey,
		})
	})
	return e
}

func main() {
	flag.Parse()
	log := logging.New(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	r, err := release.NewRunner(context.Background(), cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	e := newRouter(r)
	if err := e.Run(cfg.Server.Addr); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
