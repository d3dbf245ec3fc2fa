package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"barberbook/internal/auth"
	"barberbook/internal/database"
	"barberbook/internal/service"
)

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	availability, err := s.svc.GetAvailability(r.Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		s.logger.Error().Err(err).Str("date", date).Msg("availability lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date,
		"available": availability.Available,
		"booked":    availability.Booked,
	})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": s.catalog})
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	case http.MethodGet:
		s.requireAuth(s.handleListBookings)(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var input service.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, mailOk, err := s.svc.CreateBooking(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "all fields are required")
		case errors.Is(err, service.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		case errors.Is(err, database.ErrSlotTaken):
			writeError(w, http.StatusConflict, "slot already booked")
		default:
			s.logger.Error().Err(err).Msg("create booking failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"booking": booking,
		"mailOk":  mailOk,
	})
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.svc.ListBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list bookings failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// handleBookingByID routes /api/bookings/{id} and /api/bookings/{id}/toggle.
func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/bookings/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	var idPart string
	var toggle bool
	switch {
	case strings.HasSuffix(rest, "/toggle"):
		idPart = strings.TrimSuffix(rest, "/toggle")
		toggle = true
	default:
		idPart = rest
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case toggle && r.Method == http.MethodPatch:
		s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleToggle(w, r, id)
		})(w, r)
	case !toggle && r.Method == http.MethodDelete:
		s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
			s.handleDelete(w, r, id)
		})(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleToggle(w http.ResponseWriter, r *http.Request, id int64) {
	booking, err := s.svc.ToggleStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("toggle status failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.svc.DeleteBooking(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("delete booking failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			s.logger.Error().Msg("admin login attempted but no identity is configured")
			writeError(w, http.StatusInternalServerError, "admin auth is not configured")
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"email": adminEmail(r.Context()),
	})
}
