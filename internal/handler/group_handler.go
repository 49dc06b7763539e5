package handler

import (
	"net/http"

	"todolist/internal/middleware"
	"todolist/internal/model"
	"todolist/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupRepo repository.TaskGroupRepositoryInterface
	taskRepo  repository.TaskRepositoryInterface
}

func NewGroupHandler(groupRepo repository.TaskGroupRepositoryInterface, taskRepo repository.TaskRepositoryInterface) *GroupHandler {
	return &GroupHandler{
		groupRepo: groupRepo,
		taskRepo:  taskRepo,
	}
}

type CreateGroupRequest struct {
	Title string `form:"title" binding:"required"`
}

type TaskNode struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Status      string      `json:"status"`
	IsCompleted bool        `json:"is_completed"`
	TaskGroupID string      `json:"task_group_id"`
	Subtasks    []*TaskNode `json:"subtasks,omitempty"`
}

type GroupResponse struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Tasks []*TaskNode `json:"tasks"`
}

// buildTaskTree nests a flat, creation-ordered task list into root nodes
// with their subtask subtrees.
func buildTaskTree(tasks []model.Task) []*TaskNode {
	nodes := make(map[uuid.UUID]*TaskNode, len(tasks))
	for i := range tasks {
		nodes[tasks[i].ID] = &TaskNode{
			ID:          tasks[i].ID.String(),
			Title:       tasks[i].Title,
			Status:      tasks[i].Status,
			IsCompleted: tasks[i].IsCompleted,
			TaskGroupID: tasks[i].TaskGroupID.String(),
		}
	}

	roots := make([]*TaskNode, 0, len(tasks))
	for i := range tasks {
		node := nodes[tasks[i].ID]
		if tasks[i].ParentTaskID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*tasks[i].ParentTaskID]; ok {
			parent.Subtasks = append(parent.Subtasks, node)
		}
	}
	return roots
}

// Dashboard lists the caller's task groups with their nested task trees.
// The response carries the session's CSRF token for subsequent mutations.
func (h *GroupHandler) Dashboard(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := h.groupRepo.ListOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task groups"})
		return
	}

	response := make([]GroupResponse, len(groups))
	for i, group := range groups {
		tasks, err := h.taskRepo.GetByGroupID(c.Request.Context(), group.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}
		response[i] = GroupResponse{
			ID:    group.ID.String(),
			Title: group.Title,
			Tasks: buildTaskTree(tasks),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"task_groups": response,
		"csrf_token":  middleware.CSRFToken(c),
	})
}

// CreateForm hands out the form context for creating a task group.
func (h *GroupHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":       "create_task_group",
		"fields":     []string{"title"},
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Create adds a task group for the caller. Titles must be non-empty and
// unique among the caller's own groups.
func (h *GroupHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	existing, err := h.groupRepo.FindByTitle(c.Request.Context(), ownerID, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check group title"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A list with this name already exists"})
		return
	}

	group := &model.TaskGroup{
		ID:      uuid.New(),
		Title:   req.Title,
		OwnerID: ownerID,
	}

	if err := h.groupRepo.Create(c.Request.Context(), group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task group"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Delete removes a task group and every task in it, nested subtasks
// included. Foreign and missing groups get the same response.
func (h *GroupHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	groupID, ok := parseIDParam(c, "group_id")
	if !ok {
		return
	}

	group, err := h.groupRepo.GetOwned(c.Request.Context(), groupID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task group"})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task group not found or you don't have permission"})
		return
	}

	if err := h.groupRepo.DeleteCascade(c.Request.Context(), group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task group"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}
