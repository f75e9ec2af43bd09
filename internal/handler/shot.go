package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/service"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/table"
	"github.com/maxviazov/hockey-xg-preprocessor/pkg/response"
)

type ShotHandler struct {
	svc service.ShotService
}

func NewShotHandler(svc service.ShotService) *ShotHandler { return &ShotHandler{svc: svc} }

func (h *ShotHandler) Register(r *gin.RouterGroup) {
	r.POST("/shots/preprocess", h.preprocess)
	r.GET("/games/:key/shots", h.listByGame)
	r.GET("/enrichments", h.enrichments)
}

type preprocessResponse struct {
	Columns   []string              `json:"columns"`
	Rows      []model.GameShot      `json:"rows"`
	Total     int                   `json:"total"`
	Skipped   []service.SkippedGame `json:"skipped"`
	Persisted int                   `json:"persisted"`
}

// preprocess accepts {"enrichments": [...], "games": {key: document}}.
// The games object is decoded in document order, so the body is read raw rather than bound.
func (h *ShotHandler) preprocess(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	games, err := rawdata.ParseGamesField(body, "games")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	names, err := enrichmentNames(body)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	persist := false
	if v := c.Query("persist"); v != "" {
		if persist, err = strconv.ParseBool(v); err != nil {
			response.WriteError(c, service.ErrInvalidInput)
			return
		}
	}

	res, err := h.svc.Preprocess(c.Request.Context(), service.PreprocessRequest{
		Games:       games,
		Enrichments: names,
		Persist:     persist,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := res.Table.WriteCSV(c.Writer, table.DefaultSeparator); err != nil {
			_ = c.Error(err)
		}
		return
	}

	rows := res.Table.Rows
	if rows == nil {
		rows = []model.GameShot{}
	}
	skipped := res.Skipped
	if skipped == nil {
		skipped = []service.SkippedGame{}
	}
	response.WriteData(c, http.StatusOK, preprocessResponse{
		Columns:   table.Columns(),
		Rows:      rows,
		Total:     len(rows),
		Skipped:   skipped,
		Persisted: res.Persisted,
	})
}

func enrichmentNames(body []byte) ([]string, error) {
	v := gjson.GetBytes(body, "enrichments")
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, service.ErrInvalidInput
	}
	var names []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, service.ErrInvalidInput
		}
		names = append(names, item.String())
	}
	return names, nil
}

func (h *ShotHandler) listByGame(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListShots(c.Request.Context(), c.Param("key"), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ShotHandler) enrichments(c *gin.Context) {
	response.WriteData(c, http.StatusOK, gin.H{"enrichments": h.svc.Enrichments()})
}
