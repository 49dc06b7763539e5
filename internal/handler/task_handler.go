package handler

import (
	"net/http"

	"todolist/internal/middleware"
	"todolist/internal/model"
	"todolist/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxTaskDepth caps task nesting: a root task is depth 1, so at most two
// levels of subtasks can hang under it.
const MaxTaskDepth = 3

type TaskHandler struct {
	taskRepo  repository.TaskRepositoryInterface
	groupRepo repository.TaskGroupRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, groupRepo repository.TaskGroupRepositoryInterface) *TaskHandler {
	return &TaskHandler{
		taskRepo:  taskRepo,
		groupRepo: groupRepo,
	}
}

type CreateTaskRequest struct {
	Title  string `form:"title" binding:"required"`
	Status string `form:"status"`
}

type MoveTaskRequest struct {
	NewGroupID string `json:"new_group_id" binding:"required"`
}

// AddTaskForm hands out the form context for creating a root task in a group.
func (h *TaskHandler) AddTaskForm(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"form":        "add_task",
		"group_id":    group.ID.String(),
		"group_title": group.Title,
		"statuses":    []string{model.StatusToDo, model.StatusInProgress, model.StatusDone},
		"csrf_token":  middleware.CSRFToken(c),
	})
}

// AddTask creates a root task in the given group. Status defaults to
// "To Do" when the form omits it.
func (h *TaskHandler) AddTask(c *gin.Context) {
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

	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task := &model.Task{
		ID:          uuid.New(),
		TaskGroupID: group.ID,
		Title:       req.Title,
		Status:      status,
		OwnerID:     ownerID,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// AddSubtaskForm hands out the form context for creating a subtask. It is
// rejected up front when the parent already sits at the maximum depth.
func (h *TaskHandler) AddSubtaskForm(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	parent, err := h.taskRepo.GetOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parent task"})
		return
	}
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent task not found or you don't have permission"})
		return
	}

	depth, err := h.taskRepo.Depth(c.Request.Context(), parent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine task depth"})
		return
	}
	if depth >= MaxTaskDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add more than 3 levels of subtasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form":         "add_subtask",
		"parent_id":    parent.ID.String(),
		"parent_title": parent.Title,
		"group_id":     parent.TaskGroupID.String(),
		"statuses":     []string{model.StatusToDo, model.StatusInProgress, model.StatusDone},
		"csrf_token":   middleware.CSRFToken(c),
	})
}

// AddSubtask creates a child task under an owned parent. The subtask always
// joins the parent's group, whatever the caller might ask for, and creation
// is refused before anything is persisted when the parent is already at
// maximum depth.
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	parent, err := h.taskRepo.GetOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parent task"})
		return
	}
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent task not found or you don't have permission"})
		return
	}

	depth, err := h.taskRepo.Depth(c.Request.Context(), parent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine task depth"})
		return
	}
	if depth >= MaxTaskDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add more than 3 levels of subtasks"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task := &model.Task{
		ID:           uuid.New(),
		TaskGroupID:  parent.TaskGroupID,
		Title:        req.Title,
		Status:       status,
		ParentTaskID: &parent.ID,
		OwnerID:      ownerID,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subtask"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Delete removes a task together with its entire subtask subtree.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or you don't have permission"})
		return
	}

	if err := h.taskRepo.DeleteSubtree(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Move reassigns a root task to another of the caller's groups. Subtasks
// cannot be moved on their own; they follow their root.
func (h *TaskHandler) Move(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_group_id is required"})
		return
	}

	newGroupID, err := uuid.Parse(req.NewGroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID format"})
		return
	}

	task, err := h.taskRepo.GetOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Task not found or you don't have permission."})
		return
	}

	if task.ParentTaskID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only root tasks can be moved between groups"})
		return
	}

	group, err := h.groupRepo.GetOwned(c.Request.Context(), newGroupID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task group"})
		return
	}
	if group == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Task group not found or you don't have permission."})
		return
	}

	if err := h.taskRepo.MoveToGroup(c.Request.Context(), task.ID, group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Task moved successfully."})
}

// Toggle flips a task's completion flag.
func (h *TaskHandler) Toggle(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or you don't have permission"})
		return
	}

	task.IsCompleted = !task.IsCompleted
	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}
