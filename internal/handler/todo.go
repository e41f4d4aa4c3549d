package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkotlyarov/todo-items-service/internal/model"
	"github.com/mkotlyarov/todo-items-service/internal/service"
	"github.com/mkotlyarov/todo-items-service/pkg/response"
)

type TodoHandler struct {
	svc service.TodoService
}

func NewTodoHandler(svc service.TodoService) *TodoHandler { return &TodoHandler{svc: svc} }

func (h *TodoHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/items")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.replace)
		g.DELETE("/:id", h.delete)
	}
}

// list pages through the store. Pagination metadata travels in response
// headers so the body stays a plain JSON array of records.
func (h *TodoHandler) list(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.Query("pageNumber"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	res, err := h.svc.ListTodos(c.Request.Context(), service.PageRequest{Number: pageNumber, Size: pageSize})
	if err != nil {
		response.WriteError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(res.TotalItems))
	c.Header("X-Page-Number", strconv.Itoa(res.PageNumber))
	c.Header("X-Page-Size", strconv.Itoa(res.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(res.TotalPages))

	items := res.Items
	if items == nil {
		items = []model.TodoItem{} // render [] rather than null
	}
	response.WriteData(c, http.StatusOK, items)
}

func (h *TodoHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	item, err := h.svc.GetTodo(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, item)
}

type createTodoRequest struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func (h *TodoHandler) create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // do not leak parser internals
		return
	}
	item, err := h.svc.CreateTodo(c.Request.Context(), req.Name, req.Completed)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/items/%d", APIV1Prefix, item.ID))
	response.WriteData(c, http.StatusCreated, item)
}

type replaceTodoRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func (h *TodoHandler) replace(c *gin.Context) {
	pathID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req replaceTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	item := model.TodoItem{ID: req.ID, Name: req.Name, Completed: req.Completed}
	if err := h.svc.ReplaceTodo(c.Request.Context(), pathID, item); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TodoHandler) delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteTodo(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
