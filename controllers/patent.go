package controllers

import (
	"net/http"

	"scholar-monitor-api/models"
	"scholar-monitor-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreatePatentRequest struct {
	AminerID    string         `json:"aminer_id" binding:"required"`
	ScholarID   uint           `json:"scholar_id" binding:"required"`
	Title       datatypes.JSON `json:"title"`
	Abstract    datatypes.JSON `json:"abstract"`
	AppDate     string         `json:"app_date"`
	AppNum      string         `json:"app_num"`
	Applicant   datatypes.JSON `json:"applicant"`
	Assignee    datatypes.JSON `json:"assignee"`
	Country     string         `json:"country"`
	CPC         datatypes.JSON `json:"cpc"`
	Inventor    datatypes.JSON `json:"inventor"`
	IPC         datatypes.JSON `json:"ipc"`
	IPCR        datatypes.JSON `json:"ipcr"`
	PCT         datatypes.JSON `json:"pct"`
	Priority    datatypes.JSON `json:"priority"`
	PubDate     string         `json:"pub_date"`
	PubKind     string         `json:"pub_kind"`
	PubNum      string         `json:"pub_num"`
	PubSearchID string         `json:"pub_search_id"`
}

func (r *CreatePatentRequest) model() models.Patent {
	return models.Patent{
		AminerID:    r.AminerID,
		ScholarID:   r.ScholarID,
		Title:       r.Title,
		Abstract:    r.Abstract,
		AppDate:     r.AppDate,
		AppNum:      r.AppNum,
		Applicant:   r.Applicant,
		Assignee:    r.Assignee,
		Country:     r.Country,
		CPC:         r.CPC,
		Inventor:    r.Inventor,
		IPC:         r.IPC,
		IPCR:        r.IPCR,
		PCT:         r.PCT,
		Priority:    r.Priority,
		PubDate:     r.PubDate,
		PubKind:     r.PubKind,
		PubNum:      r.PubNum,
		PubSearchID: r.PubSearchID,
	}
}

// POST /api/patents
func CreatePatent(c *gin.Context) {
	var req CreatePatentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	patent := req.model()
	svc := services.NewPatentService(nil)
	if err := svc.Create(&patent); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patent)
}

// POST /api/patents/batch
func BatchCreatePatents(c *gin.Context) {
	var reqs []CreatePatentRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindingError(c, err)
		return
	}

	patents := make([]models.Patent, len(reqs))
	for i := range reqs {
		patents[i] = reqs[i].model()
	}

	svc := services.NewPatentService(nil)
	if err := svc.BatchCreate(patents); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": patents})
}

// GET /api/patents?scholar_id=1
func ListPatentsByScholar(c *gin.Context) {
	scholarID := uint(parseIntOrDefault(c.Query("scholar_id"), 0))

	svc := services.NewPatentService(nil)
	patents, err := svc.ListByScholar(scholarID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patents)
}

// GET /api/patents/list?size&offset&scholar_id&country&inventor&pub_status
func ListPatents(c *gin.Context) {
	size := parseIntOrDefault(c.Query("size"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	filter := services.PatentFilter{
		ScholarID: uint(parseIntOrDefault(c.Query("scholar_id"), 0)),
		Country:   c.Query("country"),
		Inventor:  c.Query("inventor"),
		PubStatus: c.Query("pub_status"),
	}

	svc := services.NewPatentService(nil)
	patents, total, err := svc.List(filter, size, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "data": patents})
}

// GET /api/patents/:id
func GetPatent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPatentService(nil)
	patent, err := svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patent)
}

type UpdatePatentRequest struct {
	AminerID    *string         `json:"aminer_id"`
	ScholarID   *uint           `json:"scholar_id"`
	Title       *datatypes.JSON `json:"title"`
	Abstract    *datatypes.JSON `json:"abstract"`
	AppDate     *string         `json:"app_date"`
	AppNum      *string         `json:"app_num"`
	Applicant   *datatypes.JSON `json:"applicant"`
	Assignee    *datatypes.JSON `json:"assignee"`
	Country     *string         `json:"country"`
	CPC         *datatypes.JSON `json:"cpc"`
	Inventor    *datatypes.JSON `json:"inventor"`
	IPC         *datatypes.JSON `json:"ipc"`
	IPCR        *datatypes.JSON `json:"ipcr"`
	PCT         *datatypes.JSON `json:"pct"`
	Priority    *datatypes.JSON `json:"priority"`
	PubDate     *string         `json:"pub_date"`
	PubKind     *string         `json:"pub_kind"`
	PubNum      *string         `json:"pub_num"`
	PubSearchID *string         `json:"pub_search_id"`
}

func (r *UpdatePatentRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setString(updates, "aminer_id", r.AminerID)
	if r.ScholarID != nil {
		updates["scholar_id"] = *r.ScholarID
	}
	setJSON(updates, "title", r.Title)
	setJSON(updates, "abstract", r.Abstract)
	setString(updates, "app_date", r.AppDate)
	setString(updates, "app_num", r.AppNum)
	setJSON(updates, "applicant", r.Applicant)
	setJSON(updates, "assignee", r.Assignee)
	setString(updates, "country", r.Country)
	setJSON(updates, "cpc", r.CPC)
	setJSON(updates, "inventor", r.Inventor)
	setJSON(updates, "ipc", r.IPC)
	setJSON(updates, "ipcr", r.IPCR)
	setJSON(updates, "pct", r.PCT)
	setJSON(updates, "priority", r.Priority)
	setString(updates, "pub_date", r.PubDate)
	setString(updates, "pub_kind", r.PubKind)
	setString(updates, "pub_num", r.PubNum)
	setString(updates, "pub_search_id", r.PubSearchID)
	return updates
}

// PUT /api/patents/:id
func UpdatePatent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePatentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewPatentService(nil)
	patent, err := svc.Update(id, req.updates())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patent)
}

// DELETE /api/patents/:id
func DeletePatent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewPatentService(nil)
	if err := svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
