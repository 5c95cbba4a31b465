package api

import (
	"net/http"
	"strings"
	"time"

	"mobilewash/internal/calendar"
	"mobilewash/internal/models"
	"mobilewash/internal/service"
	"mobilewash/internal/validation"
)

func (s *HTTPServer) handlePackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"packages": s.store.Packages()})
}

func (s *HTTPServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	today := time.Now()
	year, month := today.Year(), today.Month()

	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	// The view pages from the current month forward only.
	if !calendar.Navigable(year, month, today) {
		writeError(w, http.StatusBadRequest, "month is outside the navigable range")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"month":    int(month),
		"days":     calendar.MonthGrid(year, month, today),
		"can_prev": calendar.CanNavigatePrev(year, month, today),
		"can_next": calendar.CanNavigateNext(year, month, today),
	})
}

func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": calendar.Slots()})
}

type createBookingRequest struct {
	PackageID string `json:"package_id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	validation.BookingForm
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowPublicWrite(w, r) {
		return
	}

	var body createBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var date time.Time
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	booking, err := s.flow.CreateBooking(r.Context(), service.CreateBookingRequest{
		PackageID: body.PackageID,
		Date:      date,
		TimeSlot:  body.TimeSlot,
		Form:      body.BookingForm,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// handleSessions routes the wizard steps:
//
//	GET  /api/v1/sessions/{id}
//	POST /api/v1/sessions/{id}/package
//	POST /api/v1/sessions/{id}/date
//	POST /api/v1/sessions/{id}/time
//	POST /api/v1/sessions/{id}/submit
func (s *HTTPServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	if action == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleGetSession(w, r, sessionID)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowPublicWrite(w, r) {
		return
	}

	switch action {
	case "package":
		s.handleSelectPackage(w, r, sessionID)
	case "date":
		s.handleSelectDate(w, r, sessionID)
	case "time":
		s.handleSelectTime(w, r, sessionID)
	case "submit":
		s.handleSubmit(w, r, sessionID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleGetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSelectPackage(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		PackageID string `json:"package_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.flow.SelectPackage(r.Context(), sessionID, body.PackageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSelectDate(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(body.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	session, err := s.flow.SelectDate(r.Context(), sessionID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSelectTime(w http.ResponseWriter, r *http.Request, sessionID string) {
	var body struct {
		TimeSlot string `json:"time_slot"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.flow.SelectTime(r.Context(), sessionID, body.TimeSlot)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleSubmit(w http.ResponseWriter, r *http.Request, sessionID string) {
	var form validation.BookingForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.flow.Submit(r.Context(), sessionID, form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowPublicWrite(w, r) {
		return
	}

	var form validation.ContactForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if result := validation.ValidateContactForm(form); !result.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": result.Errors,
		})
		return
	}

	s.logger.Info().
		Str("name", form.Name).
		Str("email", form.Email).
		Msg("contact message received")
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (s *HTTPServer) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := service.Filter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		filter.Date = date
	}

	bookings, err := s.admin.Bookings(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// handleAdminBooking routes per-booking admin actions:
//
//	PATCH  /api/v1/admin/bookings/{id}
//	PATCH  /api/v1/admin/bookings/{id}/status
//	DELETE /api/v1/admin/bookings/{id}
func (s *HTTPServer) handleAdminBooking(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/bookings/")
	id, action, _ := strings.Cut(rest, "/")
	id = strings.TrimSpace(id)
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch {
	case r.Method == http.MethodPatch && action == "status":
		s.handleAdminTransition(w, r, id)
	case r.Method == http.MethodPatch && action == "":
		s.handleAdminUpdate(w, r, id)
	case r.Method == http.MethodDelete && action == "":
		if err := s.admin.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminTransition(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status, err := models.ParseStatus(body.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.admin.Transition(r.Context(), id, status); err != nil {
		writeServiceError(w, err)
		return
	}

	booking, err := s.store.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type adminUpdateRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone"`
	Date          *string `json:"date"`
	TimeSlot      *string `json:"time_slot"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

func (s *HTTPServer) handleAdminUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var body adminUpdateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	update := models.BookingUpdate{
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		TimeSlot:      body.TimeSlot,
		Address:       body.Address,
		Notes:         body.Notes,
	}
	if body.Date != nil {
		date, err := time.Parse("2006-01-02", *body.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		update.Date = &date
	}
	if body.TimeSlot != nil && !calendar.ValidSlot(*body.TimeSlot) {
		writeError(w, http.StatusBadRequest, "unknown time slot")
		return
	}

	if err := s.admin.UpdateBooking(r.Context(), id, update); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *HTTPServer) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *HTTPServer) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path, err := s.admin.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file_path": path})
}

// allowPublicWrite applies the shared rate limit to unauthenticated write
// endpoints. Limiter errors fail open; losing rate limiting beats losing
// bookings.
func (s *HTTPServer) allowPublicWrite(w http.ResponseWriter, r *http.Request) bool {
	allowed, err := s.checkPublicRateLimit(r)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}
