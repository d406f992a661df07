package handlers

import (
	"net/http"

	"project_space/internal/models"
	"project_space/internal/service"

	"github.com/gin-gonic/gin"
)

// projectFilter reads ?search= and ?status= shared by the list endpoint and the feed.
func projectFilter(c *gin.Context) service.ProjectFilter {
	return service.ProjectFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
}

// @Summary      List projects
// @Description  Public. search matches name or description case-insensitively; status filters exactly. Sorted by due date.
// @Tags         projects
// @Produce      json
// @Param        search  query     string  false  "Substring of name or description"
// @Param        status  query     string  false  "Status"  Enums(not-started,in-progress,completed)
// @Success      200     {array}   models.Project
// @Failure      500     {object}  map[string]string
// @Router       /projects [get]
func (h *Handler) listProjects(c *gin.Context) {
	f := projectFilter(c)
	projects, err := h.services.Projects.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err, msgLoadFailed, "project_list_failed", "search", f.Search, "status", f.Status)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, msgLoadFailed, "project_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Create project
// @Description  The caller becomes the owner.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      service.ProjectInput  true  "Project"
// @Success      200   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /projects [post]
// @Security     CookieAuth
func (h *Handler) createProject(c *gin.Context) {
	caller, _ := currentUser(c)

	var input service.ProjectInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	p, err := h.services.Projects.Create(c.Request.Context(), caller, input)
	if err != nil {
		h.respondError(c, err, msgSaveFailed, "project_create_failed", "user", caller.ID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Replace project
// @Description  Owner only. Replaces every field except the owner.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      service.ProjectInput  true  "Project"
// @Success      200   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /projects/{id} [put]
// @Security     CookieAuth
func (h *Handler) updateProject(c *gin.Context) {
	caller, _ := currentUser(c)
	id := c.Param("id")

	var input service.ProjectInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	p, err := h.services.Projects.Update(c.Request.Context(), caller, id, input)
	if err != nil {
		h.respondError(c, err, msgSaveFailed, "project_update_failed", "id", id, "user", caller.ID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete project
// @Description  Owner only.
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  map[string]interface{}  "acknowledged, deletedCount"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /projects/{id} [delete]
// @Security     CookieAuth
func (h *Handler) deleteProject(c *gin.Context) {
	caller, _ := currentUser(c)
	id := c.Param("id")

	n, err := h.services.Projects.Delete(c.Request.Context(), caller, id)
	if err != nil {
		h.respondError(c, err, msgDeleteFailed, "project_delete_failed", "id", id, "user", caller.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": n})
}
