package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"facultyroom/internal/booking"
	"facultyroom/internal/database"
	"facultyroom/internal/export"
	"facultyroom/internal/metrics"
	"facultyroom/internal/models"
)

const slotTakenMessage = "This slot already has a pending/approved request for this week"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleAuth serves /api/v1/auth/{role}/login and /api/v1/auth/logout.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/auth/")
	if rest == "logout" {
		if err := s.auth.Logout(r.Context(), extractToken(r)); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
		return
	}

	role, ok := strings.CutSuffix(rest, "/login")
	if !ok || strings.Contains(role, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := s.auth.Login(r.Context(), role, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// requireRole resolves the request's session and checks its role. On
// failure it writes 401 or 403 and returns ok=false.
func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, roles ...string) (models.Identity, bool) {
	sess, err := s.auth.Identify(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return models.Identity{}, false
	}
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return models.Identity{}, false
	}

	identity := models.Identity{Role: sess.Role}
	if !identity.IsAny(roles...) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return models.Identity{}, false
	}
	return identity, true
}

func (s *Server) handleTimetable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	timetable, err := s.timetables.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, timetable)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"week": s.engine.CurrentWeek()})
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createBooking(w, r)
	case http.MethodGet:
		s.listBookings(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := s.engine.RequestSlot(r.Context(), req); err != nil {
		var validationErr *booking.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, database.ErrSlotTaken):
			metrics.IncBookingConflict()
			writeError(w, http.StatusConflict, slotTakenMessage)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Booking request submitted! Waiting for teacher approval.",
	})
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.engine.WeekBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "bookings": bookings})
}

func (s *Server) handlePendingSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	slots, err := s.engine.PendingSlots(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pending": slots})
}

func (s *Server) handleTeacherBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	identity, ok := s.requireRole(w, r, models.RoleTeacher)
	if !ok {
		return
	}

	dashboard, err := s.engine.TeacherDashboard(r.Context(), identity)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"pending":  dashboard.Pending,
		"approved": dashboard.Approved,
	})
}

// handleTeacherDecision serves /api/v1/teacher/bookings/{id}/{action}
// where action is approve, reject or cancel.
func (s *Server) handleTeacherDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/teacher/bookings/")
	idStr, action, found := strings.Cut(rest, "/")
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	identity, ok := s.requireRole(w, r, models.RoleTeacher)
	if !ok {
		return
	}

	switch action {
	case "approve":
		err = s.engine.Approve(r.Context(), identity, id)
	case "reject":
		err = s.engine.Reject(r.Context(), identity, id)
	case "cancel":
		err = s.engine.Cancel(r.Context(), identity, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	metrics.IncStatusChange(action)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, ok := s.requireRole(w, r, models.RoleTeacher); !ok {
		return
	}

	week := s.engine.CurrentWeek()
	bookings, err := s.engine.WeekBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-week-%d.xlsx"`, week))
	if err := export.WriteWeekReport(w, week, bookings); err != nil {
		s.logger.Error().Err(err).Msg("failed to write export")
	}
}

func (s *Server) handleResetWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	identity, ok := s.requireRole(w, r, models.RoleDeveloper)
	if !ok {
		return
	}

	week := s.engine.CurrentWeek()
	if _, err := s.engine.ResetCurrentWeek(r.Context(), identity); err != nil {
		s.writeEngineError(w, err)
		return
	}

	metrics.IncWeekReset()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Week %d reset successfully! All bookings cleared.", week),
	})
}

func (s *Server) handleDeveloperTimetable(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, models.RoleDeveloper, models.RoleAdmin); !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleTimetable(w, r)
	case http.MethodPost:
		var timetable models.Timetable
		if err := json.NewDecoder(r.Body).Decode(&timetable); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.timetables.Save(&timetable); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, database.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "Booking not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
