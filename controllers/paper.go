package controllers

import (
	"net/http"

	"scholar-monitor-api/models"
	"scholar-monitor-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreatePaperRequest struct {
	AminerID    string         `json:"aminer_id" binding:"required"`
	ScholarID   uint           `json:"scholar_id" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Abstract    string         `json:"abstract"`
	Authors     datatypes.JSON `json:"authors"`
	Year        int            `json:"year"`
	Lang        string         `json:"lang"`
	NumCitation int            `json:"num_citation"`
	PDF         string         `json:"pdf"`
	URLs        datatypes.JSON `json:"urls"`
	Versions    datatypes.JSON `json:"versions"`
	CreateTime  string         `json:"create_time"`
	UpdateTimes datatypes.JSON `json:"update_times"`
}

func (r *CreatePaperRequest) model() models.Paper {
	return models.Paper{
		AminerID:    r.AminerID,
		ScholarID:   r.ScholarID,
		Title:       r.Title,
		Abstract:    r.Abstract,
		Authors:     r.Authors,
		Year:        r.Year,
		Lang:        r.Lang,
		NumCitation: r.NumCitation,
		PDF:         r.PDF,
		URLs:        r.URLs,
		Versions:    r.Versions,
		CreateTime:  r.CreateTime,
		UpdateTimes: r.UpdateTimes,
	}
}

// POST /api/papers
func CreatePaper(c *gin.Context) {
	var req CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	paper := req.model()
	svc := services.NewPaperService(nil)
	if err := svc.Create(&paper); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, paper)
}

// POST /api/papers/batch
// All-or-nothing: any duplicate aminer_id rejects the whole batch.
func BatchCreatePapers(c *gin.Context) {
	var reqs []CreatePaperRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindingError(c, err)
		return
	}

	papers := make([]models.Paper, len(reqs))
	for i := range reqs {
		papers[i] = reqs[i].model()
	}

	svc := services.NewPaperService(nil)
	if err := svc.BatchCreate(papers); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": papers})
}

// GET /api/papers?scholar_id=1
// Unpaginated listing kept for the scholar detail page.
func ListPapersByScholar(c *gin.Context) {
	scholarID := uint(parseIntOrDefault(c.Query("scholar_id"), 0))

	svc := services.NewPaperService(nil)
	papers, err := svc.ListByScholar(scholarID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, papers)
}

// GET /api/papers/list?size&offset&scholar_id&year&author&lang&min_citation&max_citation
func ListPapers(c *gin.Context) {
	size := parseIntOrDefault(c.Query("size"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	filter := services.PaperFilter{
		ScholarID: uint(parseIntOrDefault(c.Query("scholar_id"), 0)),
		Year:      parseIntOrDefault(c.Query("year"), 0),
		Author:    c.Query("author"),
		Lang:      c.Query("lang"),
	}
	if v := c.Query("min_citation"); v != "" {
		min := parseIntOrDefault(v, 0)
		filter.MinCitation = &min
	}
	if v := c.Query("max_citation"); v != "" {
		max := parseIntOrDefault(v, 0)
		filter.MaxCitation = &max
	}

	svc := services.NewPaperService(nil)
	papers, total, err := svc.List(filter, size, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "data": papers})
}

// GET /api/papers/:id
func GetPaper(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPaperService(nil)
	paper, err := svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

type UpdatePaperRequest struct {
	AminerID    *string         `json:"aminer_id"`
	ScholarID   *uint           `json:"scholar_id"`
	Title       *string         `json:"title"`
	Abstract    *string         `json:"abstract"`
	Authors     *datatypes.JSON `json:"authors"`
	Year        *int            `json:"year"`
	Lang        *string         `json:"lang"`
	NumCitation *int            `json:"num_citation"`
	PDF         *string         `json:"pdf"`
	URLs        *datatypes.JSON `json:"urls"`
	Versions    *datatypes.JSON `json:"versions"`
	CreateTime  *string         `json:"create_time"`
	UpdateTimes *datatypes.JSON `json:"update_times"`
}

func (r *UpdatePaperRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setString(updates, "aminer_id", r.AminerID)
	if r.ScholarID != nil {
		updates["scholar_id"] = *r.ScholarID
	}
	setString(updates, "title", r.Title)
	setString(updates, "abstract", r.Abstract)
	setJSON(updates, "authors", r.Authors)
	setInt(updates, "year", r.Year)
	setString(updates, "lang", r.Lang)
	setInt(updates, "num_citation", r.NumCitation)
	setString(updates, "pdf", r.PDF)
	setJSON(updates, "urls", r.URLs)
	setJSON(updates, "versions", r.Versions)
	setString(updates, "create_time", r.CreateTime)
	setJSON(updates, "update_times", r.UpdateTimes)
	return updates
}

// PUT /api/papers/:id
func UpdatePaper(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewPaperService(nil)
	paper, err := svc.Update(id, req.updates())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

// DELETE /api/papers/:id
func DeletePaper(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPaperService(nil)
	if err := svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
