package web

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/models"
)

const importMaxBytes = 32 << 20 // spreadsheet upload cap

// handleProperties renders the property management table.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vd := s.newViewData(r, "properties.title")

	properties, err := s.app.CRM.ListProperties(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Properties fetch failed")
		vd.Flash = &flashView{Message: vd.T("properties.error_fetching"), IsError: true}
	}

	vd.Data = properties
	s.render(w, r, http.StatusOK, "properties", vd)
}

func propertyInputFromForm(r *http.Request) models.PropertyInput {
	parseFloat := func(name string) float64 {
		f, _ := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get(name)), 64)
		return f
	}
	return models.PropertyInput{
		UnitNumber:       strings.TrimSpace(r.PostForm.Get("unit_number")),
		Name:             strings.TrimSpace(r.PostForm.Get("name")),
		Telephone:        strings.TrimSpace(r.PostForm.Get("telephone")),
		SecondaryPhone:   strings.TrimSpace(r.PostForm.Get("secondary_phone")),
		Email:            strings.TrimSpace(r.PostForm.Get("email")),
		Area:             strings.TrimSpace(r.PostForm.Get("area")),
		BuildingName:     strings.TrimSpace(r.PostForm.Get("building_name")),
		Status:           r.PostForm.Get("status"),
		ActualArea:       parseFloat("actual_area"),
		BalconyArea:      strings.TrimSpace(r.PostForm.Get("balcony_area")),
		ParkingNumber:    strings.TrimSpace(r.PostForm.Get("parking_number")),
		Floor:            strings.TrimSpace(r.PostForm.Get("floor")),
		RoomsDescription: strings.TrimSpace(r.PostForm.Get("rooms_description")),
		RentPrice:        parseFloat("rent_price"),
		SalePrice:        parseFloat("sale_price"),
		Payments:         strings.TrimSpace(r.PostForm.Get("payments")),
		ReleasingDate:    strings.TrimSpace(r.PostForm.Get("releasing_date")),
	}
}

func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.CreateProperty(r.Context(), propertyInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "properties.error_adding", "/properties")
		return
	}

	setFlash(w, "properties.added", false)
	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

func (s *Server) handlePropertyUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get("id")
	if id == "" {
		http.Error(w, "Missing id", http.StatusBadRequest)
		return
	}

	if _, err := s.app.CRM.UpdateProperty(r.Context(), id, propertyInputFromForm(r)); err != nil {
		s.failAndRedirect(w, r, err, "properties.error_updating", "/properties")
		return
	}

	setFlash(w, "properties.updated", false)
	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderConfirmDelete(w, r, "properties.title", "properties.confirm_delete", "/properties")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get("id")
	if id == "" {
		http.Error(w, "Missing id", http.StatusBadRequest)
		return
	}

	if err := s.app.CRM.DeleteProperty(r.Context(), id); err != nil {
		s.failAndRedirect(w, r, err, "properties.error_deleting", "/properties")
		return
	}

	setFlash(w, "properties.deleted", false)
	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

// handlePropertyImport streams an uploaded spreadsheet through to the CRM
// bulk import endpoint. The upload is never buffered to disk here; the
// upstream replaces the whole collection with the file's contents.
func (s *Server) handlePropertyImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, importMaxBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		setFlash(w, "properties.import_error", true)
		http.Redirect(w, r, "/properties", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if _, err := s.app.CRM.ImportProperties(r.Context(), header.Filename, file); err != nil {
		s.failAndRedirect(w, r, err, "properties.import_error", "/properties")
		return
	}

	setFlash(w, "properties.import_success", false)
	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

// handlePropertyExport streams the CRM export download to the browser.
func (s *Server) handlePropertyExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, contentType, err := s.app.CRM.ExportProperties(r.Context())
	if err != nil {
		s.failAndRedirect(w, r, err, "properties.export_error", "/properties")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="properties.xlsx"`)
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Error().Err(err).Msg("Export stream interrupted")
	}
}
