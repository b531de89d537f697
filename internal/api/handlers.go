package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edenlabs/edenbot/internal/database"
)

// Handler serves the query API endpoints backed by the store.
type Handler struct {
	store  database.Store
	logger *slog.Logger
}

type userDTO struct {
	ID         int64   `json:"id"`
	TelegramID int64   `json:"telegram_id"`
	Username   *string `json:"username"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	CreatedAt  string  `json:"created_at"`
}

type projectDTO struct {
	ID                 int64   `json:"id"`
	OwnerID            int64   `json:"owner_id"`
	TokenName          string  `json:"token_name"`
	TokenSymbol        string  `json:"token_symbol"`
	Description        string  `json:"description"`
	Website            *string `json:"website"`
	Twitter            *string `json:"twitter"`
	TelegramGroupID    *int64  `json:"telegram_group_id"`
	Status             string  `json:"status"`
	CaptchaEnabled     bool    `json:"captcha_enabled"`
	ScamFilterEnabled  bool    `json:"scam_filter_enabled"`
	PumpFunDescription *string `json:"pump_fun_description"`
	CreatedAt          string  `json:"created_at"`
}

type statsDTO struct {
	TotalUsers       int64 `json:"total_users"`
	TotalProjects    int64 `json:"total_projects"`
	LaunchedProjects int64 `json:"launched_projects"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "edenbot",
		"endpoints": []string{
			"/health",
			"/api/users/{telegram_id}",
			"/api/users/{telegram_id}/projects",
			"/api/projects/{id}",
			"/api/stats",
		},
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := pathInt64(w, r, "telegram_id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) getUserProjects(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := pathInt64(w, r, "telegram_id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	projects, err := h.store.GetProjectsByOwner(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	dtos := make([]projectDTO, 0, len(projects))
	for i := range projects {
		dtos = append(dtos, toProjectDTO(&projects[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}

	writeJSON(w, http.StatusOK, toProjectDTO(project))
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsDTO{
		TotalUsers:       stats.TotalUsers,
		TotalProjects:    stats.TotalProjects,
		LaunchedProjects: stats.LaunchedProjects,
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "API request failed", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusServiceUnavailable, "storage unavailable")
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorDTO{Error: message})
}

func toUserDTO(u *database.User) userDTO {
	return userDTO{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Username:   nullStringPtr(u.Username.Valid, u.Username.String),
		FirstName:  nullStringPtr(u.FirstName.Valid, u.FirstName.String),
		LastName:   nullStringPtr(u.LastName.Valid, u.LastName.String),
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toProjectDTO(p *database.Project) projectDTO {
	var groupID *int64
	if p.TelegramGroupID.Valid {
		v := p.TelegramGroupID.Int64
		groupID = &v
	}
	return projectDTO{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		TokenName:          p.TokenName,
		TokenSymbol:        p.TokenSymbol,
		Description:        p.Description,
		Website:            nullStringPtr(p.Website.Valid, p.Website.String),
		Twitter:            nullStringPtr(p.Twitter.Valid, p.Twitter.String),
		TelegramGroupID:    groupID,
		Status:             p.Status,
		CaptchaEnabled:     p.CaptchaEnabled,
		ScamFilterEnabled:  p.ScamFilterEnabled,
		PumpFunDescription: nullStringPtr(p.PumpFunDescription.Valid, p.PumpFunDescription.String),
		CreatedAt:          p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func nullStringPtr(valid bool, s string) *string {
	if !valid {
		return nil
	}
	return &s
}
