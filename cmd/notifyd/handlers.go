package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sparklean/notify/pkg/dispatch"
	"github.com/sparklean/notify/pkg/hub"
	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
	"github.com/sparklean/notify/pkg/queue"
)

type apiHandlers struct {
	store  notification.Store
	events *hub.Hub
	jobs   *queue.Queue
	logger *slog.Logger
}

func (h *apiHandlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = parsed
	}

	page, err := h.store.ListForUser(r.Context(), userID, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *apiHandlers) markRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notifID := chi.URLParam(r, "notificationID")
	notif, err := h.store.MarkRead(r.Context(), userID, notifID)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "unable to update notification")
		return
	}

	if notif.ReadAt != nil {
		h.events.Publish(r.Context(), userID, notification.Updated{
			ID:     notif.ID,
			ReadAt: *notif.ReadAt,
		})
	}
	writeJSON(w, http.StatusOK, notif)
}

func (h *apiHandlers) markAllRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	updated, err := h.store.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to update notifications")
		return
	}

	// One sync event instead of one update per notification: open
	// sessions re-fetch a snapshot.
	h.events.Publish(r.Context(), userID, notification.BulkSync{})

	writeJSON(w, http.StatusOK, map[string]int{"updatedCount": updated})
}

type dispatchRequest struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (h *apiHandlers) enqueueDispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "userId and message are required")
		return
	}
	reason := notification.Type(req.Reason)
	if !reason.Valid() {
		writeError(w, http.StatusBadRequest, "unknown reason")
		return
	}

	jobID := h.jobs.Enqueue(queue.Job{
		Reason: reason,
		Recipient: dispatch.Recipient{
			UserID: req.UserID,
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
		},
		Message: req.Message,
	})

	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "dispatch requested",
		logger.UserID(req.UserID),
		slog.String("reason", req.Reason),
	)
	writeJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID.String()})
}

func (h *apiHandlers) queueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.jobs.Status())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
