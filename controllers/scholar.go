package controllers

import (
	"net/http"

	"scholar-monitor-api/models"
	"scholar-monitor-api/services"
	"scholar-monitor-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// GET /api/scholars?name=...&org=...&size=10&offset=0
// Provider pass-through: searches AMiner by name/org and returns the raw
// summary list without persisting anything.
func SearchScholars(c *gin.Context) {
	name := utils.SanitizeInput(c.Query("name"))
	org := utils.SanitizeInput(c.Query("org"))
	size := parseIntOrDefault(c.Query("size"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	client := services.NewAminerClient(nil)
	results, err := client.SearchScholars(c.Request.Context(), name, org, size, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// GET /api/scholars/aminer/:id/detail
// Fetches the provider person record and normalizes it into the shape
// accepted by POST /api/scholars, for direct re-submission.
func GetScholarDetail(c *gin.Context) {
	client := services.NewAminerClient(nil)
	person, err := client.GetScholarDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.NormalizeScholarDetail(person))
}

// GET /api/scholars/:id/papers?size=10
// :id is the external AMiner person id; the provider envelope passes through.
func GetScholarPapers(c *gin.Context) {
	size := parseIntOrDefault(c.Query("size"), 10)

	client := services.NewAminerClient(nil)
	products, err := client.SearchScholarPapers(c.Request.Context(), c.Param("id"), size, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/scholars/:id/patents?size=10&q=keyword
func GetScholarPatents(c *gin.Context) {
	size := parseIntOrDefault(c.Query("size"), 10)
	page := parseIntOrDefault(c.Query("page"), 0)
	query := utils.SanitizeInput(c.Query("q"))

	client := services.NewAminerClient(nil)
	products, err := client.SearchScholarPatents(c.Request.Context(), c.Param("id"), size, page, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

type CreateScholarRequest struct {
	AminerID    string         `json:"aminer_id" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	NameZh      string         `json:"name_zh"`
	Avatar      string         `json:"avatar"`
	Nation      string         `json:"nation"`
	Indices     datatypes.JSON `json:"indices"`
	Links       datatypes.JSON `json:"links"`
	Profile     datatypes.JSON `json:"profile"`
	Tags        datatypes.JSON `json:"tags"`
	TagsScore   datatypes.JSON `json:"tags_score"`
	TagsZh      datatypes.JSON `json:"tags_zh"`
	NumFollowed int            `json:"num_followed"`
	NumUpvoted  int            `json:"num_upvoted"`
	NumViewed   int            `json:"num_viewed"`
	Gender      string         `json:"gender"`
	Homepage    string         `json:"homepage"`
	Position    string         `json:"position"`
	PositionZh  string         `json:"position_zh"`
	Work        string         `json:"work"`
	WorkZh      string         `json:"work_zh"`
	Note        string         `json:"note"`
}

// POST /api/scholars
func CreateScholar(c *gin.Context) {
	var req CreateScholarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	scholar := models.Scholar{
		AminerID:    req.AminerID,
		Name:        req.Name,
		NameZh:      req.NameZh,
		Avatar:      req.Avatar,
		Nation:      req.Nation,
		Indices:     req.Indices,
		Links:       req.Links,
		Profile:     req.Profile,
		Tags:        req.Tags,
		TagsScore:   req.TagsScore,
		TagsZh:      req.TagsZh,
		NumFollowed: req.NumFollowed,
		NumUpvoted:  req.NumUpvoted,
		NumViewed:   req.NumViewed,
		Gender:      req.Gender,
		Homepage:    req.Homepage,
		Position:    req.Position,
		PositionZh:  req.PositionZh,
		Work:        req.Work,
		WorkZh:      req.WorkZh,
		Note:        req.Note,
	}

	svc := services.NewScholarService(nil)
	if err := svc.Create(&scholar); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scholar)
}

// GET /api/scholars/list?size=10&offset=0
func ListScholars(c *gin.Context) {
	size := parseIntOrDefault(c.Query("size"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	svc := services.NewScholarService(nil)
	scholars, total, err := svc.List(size, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "data": scholars})
}

// GET /api/scholars/:id
func GetScholar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewScholarService(nil)
	scholar, err := svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholar)
}

type UpdateScholarRequest struct {
	AminerID    *string         `json:"aminer_id"`
	Name        *string         `json:"name"`
	NameZh      *string         `json:"name_zh"`
	Avatar      *string         `json:"avatar"`
	Nation      *string         `json:"nation"`
	Indices     *datatypes.JSON `json:"indices"`
	Links       *datatypes.JSON `json:"links"`
	Profile     *datatypes.JSON `json:"profile"`
	Tags        *datatypes.JSON `json:"tags"`
	TagsScore   *datatypes.JSON `json:"tags_score"`
	TagsZh      *datatypes.JSON `json:"tags_zh"`
	NumFollowed *int            `json:"num_followed"`
	NumUpvoted  *int            `json:"num_upvoted"`
	NumViewed   *int            `json:"num_viewed"`
	Gender      *string         `json:"gender"`
	Homepage    *string         `json:"homepage"`
	Position    *string         `json:"position"`
	PositionZh  *string         `json:"position_zh"`
	Work        *string         `json:"work"`
	WorkZh      *string         `json:"work_zh"`
	Note        *string         `json:"note"`
}

func (r *UpdateScholarRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setString(updates, "aminer_id", r.AminerID)
	setString(updates, "name", r.Name)
	setString(updates, "name_zh", r.NameZh)
	setString(updates, "avatar", r.Avatar)
	setString(updates, "nation", r.Nation)
	setJSON(updates, "indices", r.Indices)
	setJSON(updates, "links", r.Links)
	setJSON(updates, "profile", r.Profile)
	setJSON(updates, "tags", r.Tags)
	setJSON(updates, "tags_score", r.TagsScore)
	setJSON(updates, "tags_zh", r.TagsZh)
	setInt(updates, "num_followed", r.NumFollowed)
	setInt(updates, "num_upvoted", r.NumUpvoted)
	setInt(updates, "num_viewed", r.NumViewed)
	setString(updates, "gender", r.Gender)
	setString(updates, "homepage", r.Homepage)
	setString(updates, "position", r.Position)
	setString(updates, "position_zh", r.PositionZh)
	setString(updates, "work", r.Work)
	setString(updates, "work_zh", r.WorkZh)
	setString(updates, "note", r.Note)
	return updates
}

// PUT /api/scholars/:id
func UpdateScholar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateScholarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewScholarService(nil)
	scholar, err := svc.Update(id, req.updates())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholar)
}

// DELETE /api/scholars/:id
func DeleteScholar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewScholarService(nil)
	if err := svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func setString(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func setInt(updates map[string]interface{}, column string, value *int) {
	if value != nil {
		updates[column] = *value
	}
}

func setJSON(updates map[string]interface{}, column string, value *datatypes.JSON) {
	if value != nil {
		updates[column] = *value
	}
}
