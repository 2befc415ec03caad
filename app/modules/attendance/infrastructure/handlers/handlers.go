package attendancehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	attendanceservice "github.com/stonecove-rowing/crewbot/app/modules/attendance/application"
	attendancedb "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/repositories"
)

// AttendanceHandlers handles HTTP requests for practices and marks.
type AttendanceHandlers struct {
	service *attendanceservice.AttendanceService
	logger  *slog.Logger
}

// NewAttendanceHandlers creates a new AttendanceHandlers instance.
func NewAttendanceHandlers(service *attendanceservice.AttendanceService, logger *slog.Logger) *AttendanceHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceHandlers{service: service, logger: logger}
}

// Routes sets up the routes for the attendance module.
func (h *AttendanceHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreatePractice)
	r.Get("/", h.ListPractices)
	r.Get("/{practiceID}", h.GetPractice)
	r.Get("/{practiceID}/marks", h.ListMarks)
	r.Put("/{practiceID}/marks/{athleteID}", h.MarkAttendance)
	return r
}

func (h *AttendanceHandlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *AttendanceHandlers) CreatePractice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		When     string `json:"when"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.When == "" {
		http.Error(w, "title and when are required", http.StatusBadRequest)
		return
	}

	practice, err := h.service.CreatePractice(r.Context(), attendanceservice.CreatePracticeCommand{
		Title:    req.Title,
		When:     req.When,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create practice: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusCreated, practice)
}

func (h *AttendanceHandlers) ListPractices(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	practices, err := h.service.ListPractices(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list practices: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, practices)
}

func (h *AttendanceHandlers) GetPractice(w http.ResponseWriter, r *http.Request) {
	practiceID, err := uuid.Parse(chi.URLParam(r, "practiceID"))
	if err != nil {
		http.Error(w, "invalid practiceID", http.StatusBadRequest)
		return
	}

	practice, err := h.service.GetPractice(r.Context(), practiceID)
	if err != nil {
		if errors.Is(err, attendancedb.ErrNotFound) {
			http.Error(w, "Practice not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get practice: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, practice)
}

func (h *AttendanceHandlers) ListMarks(w http.ResponseWriter, r *http.Request) {
	practiceID, err := uuid.Parse(chi.URLParam(r, "practiceID"))
	if err != nil {
		http.Error(w, "invalid practiceID", http.StatusBadRequest)
		return
	}

	marks, err := h.service.ListMarks(r.Context(), practiceID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list marks: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, marks)
}

func (h *AttendanceHandlers) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	practiceID, err := uuid.Parse(chi.URLParam(r, "practiceID"))
	if err != nil {
		http.Error(w, "invalid practiceID", http.StatusBadRequest)
		return
	}
	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		http.Error(w, "invalid athleteID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status attendancedb.MarkStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mark, err := h.service.MarkAttendance(r.Context(), practiceID, athleteID, req.Status)
	if err != nil {
		if errors.Is(err, attendancedb.ErrNotFound) {
			http.Error(w, "Practice not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to mark attendance: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusOK, mark)
}
