// Package web serves the admin HTTP API for menus.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"navtree/internal/metric"
	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/store"
	"navtree/internal/tree"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Config struct {
	Store        store.Store
	Log          zerolog.Logger
	Metrics      *metric.Mutations
	AllowOrigins []string

	NewItemID func() string
	NewMenuID func() string
}

var bindingNamesOnce sync.Once

type Server struct {
	cfg Config

	// mu serializes read-modify-write cycles against the store.
	mu  sync.Mutex
	hub *hub

	engine *gin.Engine
}

func NewServer(cfg Config) *Server {
	if cfg.NewItemID == nil {
		cfg.NewItemID = store.NewItemID
	}
	if cfg.NewMenuID == nil {
		cfg.NewMenuID = store.NewMenuID
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metric.NewMutations()
	}
	bindingNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(mutate.JSONFieldName)
		}
	})
	s := &Server{cfg: cfg, hub: newHub()}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// MetricsHandler serves the mutation counters for a separate listener.
func (s *Server) MetricsHandler() http.Handler { return s.cfg.Metrics.Handler() }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	origins := s.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Type"},
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.GET("/menus", s.handleListMenus)
	api.POST("/menus", s.handleCreateMenu)
	api.GET("/menus/:id", s.handleGetMenu)
	api.PUT("/menus/:id", s.handlePutMenu)
	api.DELETE("/menus/:id", s.handleDeleteMenu)
	api.POST("/menus/:id/items", s.handleAddItem)
	api.PATCH("/menus/:id/items/:itemId", s.handleEditItem)
	api.DELETE("/menus/:id/items/:itemId", s.handleDeleteItem)
	api.POST("/menus/:id/move", s.handleMove)
	api.GET("/ws", s.handleWS)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := s.cfg.Log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = s.cfg.Log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

type menuInput struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" binding:"required,max=200"`
	Location    string           `json:"location" binding:"required,oneof=header footer sidebar mobile"`
	Type        string           `json:"type" binding:"omitempty,oneof=main secondary utility"`
	Status      string           `json:"status" binding:"omitempty,oneof=active inactive"`
	Description string           `json:"description"`
	Items       []model.MenuItem `json:"items"`
}

type addItemInput struct {
	ParentID string `json:"parentId"`
	mutate.ItemInput
}

type moveInput struct {
	ActiveID string `json:"activeId" binding:"required"`
	OverID   string `json:"overId" binding:"required"`
}

func (s *Server) handleListMenus(c *gin.Context) {
	menus, err := s.cfg.Store.ListMenus(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": menus})
}

func (s *Server) handleGetMenu(c *gin.Context) {
	m, err := s.cfg.Store.GetMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": m})
}

func (s *Server) handleCreateMenu(c *gin.Context) {
	var in menuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	m := model.Menu{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Location:    model.Location(in.Location),
		Type:        model.MenuType(in.Type),
		Status:      model.Status(in.Status),
		Description: in.Description,
		Items:       in.Items,
	}
	if m.ID == "" {
		m.ID = s.cfg.NewMenuID()
	}
	if err := mutate.ValidateMenu(m); err != nil {
		s.writeError(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := c.Request.Context()
	if _, err := s.cfg.Store.GetMenu(ctx, m.ID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "menu already exists: " + m.ID})
		return
	}
	saved, err := s.cfg.Store.SaveMenu(ctx, m)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.record(ctx, "menu.create", saved.ID, mutate.Outcome("created"), map[string]any{"name": saved.Name})
	c.JSON(http.StatusCreated, gin.H{"data": saved})
}

// handlePutMenu saves a whole menu document, tree included.
func (s *Server) handlePutMenu(c *gin.Context) {
	var in menuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	id := c.Param("id")
	if in.ID != "" && in.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu id in body does not match path"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := c.Request.Context()
	m := model.Menu{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Location:    model.Location(in.Location),
		Type:        model.MenuType(in.Type),
		Status:      model.Status(in.Status),
		Description: in.Description,
		Items:       in.Items,
	}
	if err := mutate.ValidateMenu(m); err != nil {
		s.writeError(c, err)
		return
	}
	saved, err := s.cfg.Store.SaveMenu(ctx, m)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.record(ctx, "menu.save", saved.ID, mutate.Outcome("saved"), map[string]any{"items": len(saved.Items)})
	c.JSON(http.StatusOK, gin.H{"data": saved})
}

func (s *Server) handleDeleteMenu(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := s.cfg.Store.DeleteMenu(ctx, id); err != nil {
		s.writeError(c, err)
		return
	}
	s.record(ctx, "menu.delete", id, mutate.OutcomeDeleted, nil)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAddItem(c *gin.Context) {
	var in addItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	s.mutate(c, "item.add", func(m model.Menu) (mutate.Result, error) {
		return mutate.AddItem(m, in.ParentID, s.cfg.NewItemID(), in.ItemInput)
	})
}

// handleEditItem applies a partial update: fields missing from the body keep their
// current values.
func (s *Server) handleEditItem(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		s.writeError(c, err)
		return
	}
	itemID := c.Param("itemId")
	s.mutate(c, "item.edit", func(m model.Menu) (mutate.Result, error) {
		it, _, ok := tree.Find(m.Items, itemID)
		if !ok {
			return mutate.Result{Menu: m}, mutate.NotFoundError{Kind: "item", ID: itemID}
		}
		in := mutate.InputFromItem(*it)
		if err := json.Unmarshal(raw, &in); err != nil {
			return mutate.Result{Menu: m}, bindError(err)
		}
		return mutate.EditItem(m, itemID, in)
	})
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	itemID := c.Param("itemId")
	s.mutate(c, "item.delete", func(m model.Menu) (mutate.Result, error) {
		return mutate.DeleteItem(m, itemID)
	})
}

func (s *Server) handleMove(c *gin.Context) {
	var in moveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, bindError(err))
		return
	}
	s.mutate(c, "item.move", func(m model.Menu) (mutate.Result, error) {
		return mutate.Move(m, in.ActiveID, in.OverID)
	})
}

// mutate loads the menu, applies fn and saves the result when it changed.
func (s *Server) mutate(c *gin.Context, op string, fn func(model.Menu) (mutate.Result, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := c.Request.Context()
	m, err := s.cfg.Store.GetMenu(ctx, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	res, err := fn(m)
	if err != nil {
		s.cfg.Metrics.Record(op, "rejected")
		s.writeError(c, err)
		return
	}
	out := res.Menu
	if res.Changed() {
		out, err = s.cfg.Store.SaveMenu(ctx, res.Menu)
		if err != nil {
			s.writeError(c, err)
			return
		}
		s.record(ctx, op, out.ID, res.Outcome, res.Payload())
	} else {
		s.cfg.Metrics.Record(op, string(res.Outcome))
	}
	status := http.StatusOK
	if res.Outcome == mutate.OutcomeAdded {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": gin.H{
		"outcome": res.Outcome,
		"message": res.Message(),
		"itemId":  res.ItemID,
		"menu":    out,
	}})
}

// record logs the event, counts it and notifies websocket subscribers. Event log
// failures are logged, not returned: the menu is already saved.
func (s *Server) record(ctx context.Context, op, menuID string, outcome mutate.Outcome, payload any) {
	s.cfg.Metrics.Record(op, string(outcome))
	if err := s.cfg.Store.AppendEvent(ctx, op, menuID, payload); err != nil {
		s.cfg.Log.Warn().Err(err).Str("menu", menuID).Str("op", op).Msg("event log append failed")
	}
	s.hub.publish(changeMessage{Type: "menu.updated", MenuID: menuID, Op: op, Outcome: string(outcome)})
}

func bindError(err error) error {
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &te) || errors.Is(err, io.EOF) {
		return mutate.ValidationError{Fields: map[string]string{"body": "must be a JSON object"}}
	}
	if ve, ok := mutate.FromValidator(err); ok {
		return ve
	}
	return err
}

func (s *Server) writeError(c *gin.Context, err error) {
	var (
		ve  mutate.ValidationError
		ie  mutate.ItemError
		dup model.DuplicateIDError
		emp model.EmptyIDError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
	case errors.As(err, &ie):
		c.JSON(http.StatusBadRequest, gin.H{"error": ie.Error(), "item": ie.ID, "fields": ie.Fields})
	case errors.As(err, &dup), errors.As(err, &emp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrMenuNotFound), mutate.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, mutate.ErrCycle):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.cfg.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
