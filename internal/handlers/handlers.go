package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/sashafierce98/TGPTaskflow/internal/admin"
	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/authz"
	"github.com/sashafierce98/TGPTaskflow/internal/kanban"
	"github.com/sashafierce98/TGPTaskflow/internal/models"
	"github.com/sashafierce98/TGPTaskflow/internal/notify"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
	"github.com/sashafierce98/TGPTaskflow/internal/web"
)

type Handler struct {
	kanban *kanban.Service
	notify *notify.Deriver
	admin  *admin.Service
	log    *logrus.Logger
}

func New(kanbanSvc *kanban.Service, deriver *notify.Deriver, adminSvc *admin.Service, log *logrus.Logger) *Handler {
	return &Handler{kanban: kanbanSvc, notify: deriver, admin: adminSvc, log: log}
}

// RegisterRoutes mounts the full API under /api. Everything except the
// banner, session exchange and logout sits behind the session middleware.
func (h *Handler) RegisterRoutes(r chi.Router, authHandler *auth.Handler, authn *auth.Authenticator) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Root)
		r.Post("/auth/session", authHandler.CreateSession)
		r.Post("/auth/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authn.Middleware)

			r.Get("/auth/me", authHandler.Me)

			r.Get("/boards", h.ListBoards)
			r.Post("/boards", h.CreateBoard)
			r.Get("/boards/{boardID}", h.GetBoard)
			r.Delete("/boards/{boardID}", h.DeleteBoard)

			r.Get("/boards/{boardID}/columns", h.ListColumns)
			r.Post("/boards/{boardID}/columns", h.CreateColumn)
			r.Put("/columns/{columnID}", h.UpdateColumn)
			r.Delete("/columns/{columnID}", h.DeleteColumn)

			r.Get("/boards/{boardID}/cards", h.ListCards)
			r.Post("/boards/{boardID}/columns/{columnID}/cards", h.CreateCard)
			r.Put("/cards/{cardID}", h.UpdateCard)
			r.Delete("/cards/{cardID}", h.DeleteCard)

			r.Get("/cards/{cardID}/comments", h.ListComments)
			r.Post("/cards/{cardID}/comments", h.AddComment)

			r.Get("/admin/users", h.ListUsers)
			r.Put("/admin/users/{userID}/role", h.SetRole)
			r.Get("/admin/analytics", h.Analytics)

			r.Get("/notifications", h.Notifications)
		})
	})
}

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	web.JSON(w, http.StatusOK, map[string]string{
		"message": "TGP Taskflow Kanban API",
		"status":  "running",
	})
}

// respondError maps service errors onto the HTTP taxonomy. notFoundMsg and
// forbiddenMsg carry the entity-specific reason strings.
func (h *Handler) respondError(w http.ResponseWriter, err error, notFoundMsg, forbiddenMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		web.Error(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, authz.ErrForbidden):
		web.Error(w, http.StatusForbidden, forbiddenMsg)
	default:
		h.log.WithError(err).Error("request failed")
		web.Error(w, http.StatusInternalServerError, "Internal error")
	}
}

func callerID(r *http.Request) string {
	userID, _ := auth.UserIDFromContext(r.Context())
	return userID
}

// --- Boards ---

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.kanban.ListBoards(r.Context())
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, boards)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var input models.CreateBoardInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	board, err := h.kanban.CreateBoard(r.Context(), callerID(r), input)
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, board)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.kanban.GetBoard(r.Context(), callerID(r), chi.URLParam(r, "boardID"))
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, board)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	err := h.kanban.DeleteBoard(r.Context(), callerID(r), chi.URLParam(r, "boardID"))
	if err != nil {
		h.respondError(w, err, "Board not found", "Only owner can delete")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Board deleted"})
}

// --- Columns ---

func (h *Handler) ListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.kanban.ListColumns(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, columns)
}

func (h *Handler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	var input models.CreateColumnInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	column, err := h.kanban.CreateColumn(r.Context(), callerID(r), chi.URLParam(r, "boardID"), input)
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, column)
}

func (h *Handler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	var input models.CreateColumnInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.kanban.UpdateColumn(r.Context(), callerID(r), chi.URLParam(r, "columnID"), input)
	if err != nil {
		h.respondError(w, err, "Column not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Column updated"})
}

func (h *Handler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	err := h.kanban.DeleteColumn(r.Context(), callerID(r), chi.URLParam(r, "columnID"))
	if err != nil {
		h.respondError(w, err, "Column not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Column deleted"})
}

// --- Cards ---

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.kanban.ListCards(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		h.respondError(w, err, "Board not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, cards)
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var input models.CreateCardInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.kanban.CreateCard(r.Context(), callerID(r),
		chi.URLParam(r, "boardID"), chi.URLParam(r, "columnID"), input)
	if err != nil {
		h.respondError(w, err, "Card not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, card)
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateCardInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.kanban.UpdateCard(r.Context(), chi.URLParam(r, "cardID"), input)
	if err != nil {
		h.respondError(w, err, "Card not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, card)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.kanban.DeleteCard(r.Context(), chi.URLParam(r, "cardID")); err != nil {
		h.respondError(w, err, "Card not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

// --- Comments ---

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.kanban.ListComments(r.Context(), chi.URLParam(r, "cardID"))
	if err != nil {
		h.respondError(w, err, "Card not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, comments)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input models.AddCommentInput
	if err := web.Decode(w, r, &input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.kanban.AddComment(r.Context(), callerID(r), chi.URLParam(r, "cardID"), input.Text)
	if err != nil {
		h.respondError(w, err, "Card not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, comment)
}

// --- Admin ---

// ListUsers returns every user.
// @Summary List users (admin only)
// @Tags admin
// @Success 200 {array} models.User
// @Failure 403 {string} string "Admin only"
// @Router /admin/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context(), callerID(r))
	if err != nil {
		h.respondError(w, err, "User not found", "Admin only")
		return
	}
	web.JSON(w, http.StatusOK, users)
}

// SetRole overwrites a user's role. The role arrives as a query parameter
// with a JSON body fallback.
// @Summary Change a user's role (admin only)
// @Tags admin
// @Param role query string true "New role"
// @Router /admin/users/{userID}/role [put]
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		var body struct {
			Role string `json:"role"`
		}
		if err := web.Decode(w, r, &body); err == nil {
			role = body.Role
		}
	}
	if role == "" {
		web.Error(w, http.StatusBadRequest, "Role required")
		return
	}

	err := h.admin.SetRole(r.Context(), callerID(r), chi.URLParam(r, "userID"), role)
	if err != nil {
		h.respondError(w, err, "User not found", "Admin only")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.admin.Analytics(r.Context(), callerID(r))
	if err != nil {
		h.respondError(w, err, "User not found", "Admin only")
		return
	}
	web.JSON(w, http.StatusOK, summary)
}

// --- Notifications ---

// Notifications derives the caller's due-date notifications on demand.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notify.Derive(r.Context(), callerID(r), time.Now().UTC())
	if err != nil {
		h.respondError(w, err, "User not found", "Access denied")
		return
	}
	web.JSON(w, http.StatusOK, notifications)
}
