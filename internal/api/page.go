package api

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"anti-theft-gps-tracker/internal/forms"
	"anti-theft-gps-tracker/internal/logging"
	"anti-theft-gps-tracker/internal/wallet"

	"github.com/google/uuid"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type pageData struct {
	Title           string
	Connected       bool
	Account         wallet.Account
	Network         string
	CreateDevice    forms.CreateDeviceForm
	UpdateThreshold forms.UpdateThresholdForm
	GPSEvent        forms.GPSEventForm
}

// newPage starts every form from its defaults; a submission replaces only the
// form it came from.
func (a *API) newPage() pageData {
	acct, ok := a.providers.Wallet().Account()
	return pageData{
		Title:           "Anti-Theft GPS Tracker",
		Connected:       ok,
		Account:         acct,
		Network:         a.providers.Network(),
		CreateDevice:    forms.NewCreateDeviceForm(),
		UpdateThreshold: forms.NewUpdateThresholdForm(),
		GPSEvent:        forms.NewGPSEventForm(),
	}
}

func (a *API) GetPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, a.newPage())
}

func (a *API) SubmitCreateDeviceForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	page := a.newPage()
	page.CreateDevice.Name = r.PostFormValue("name")
	page.CreateDevice.Threshold = r.PostFormValue("threshold")

	ctx := logging.WithSubmission(r.Context(), uuid.NewString())
	res, err := page.CreateDevice.Submit(ctx, a.providers.Encoder(), a.providers.Wallet())
	logSubmission(ctx, "create_device", res, err)
	a.render(w, r, page)
}

func (a *API) SubmitUpdateThresholdForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	page := a.newPage()
	page.UpdateThreshold.DeviceID = r.PostFormValue("device_id")
	page.UpdateThreshold.Threshold = r.PostFormValue("threshold")

	ctx := logging.WithSubmission(r.Context(), uuid.NewString())
	res, err := page.UpdateThreshold.Submit(ctx, a.providers.Encoder(), a.providers.Wallet())
	logSubmission(ctx, "update_threshold", res, err)
	a.render(w, r, page)
}

func (a *API) SubmitGPSEventForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	page := a.newPage()
	page.GPSEvent.DeviceID = r.PostFormValue("device_id")
	page.GPSEvent.Latitude = r.PostFormValue("latitude")
	page.GPSEvent.Longitude = r.PostFormValue("longitude")

	ctx := logging.WithSubmission(r.Context(), uuid.NewString())
	res, err := page.GPSEvent.Submit(ctx, a.providers.Encoder(), a.providers.Wallet())
	logSubmission(ctx, "register_gps_event", res, err)
	a.render(w, r, page)
}

func (a *API) render(w http.ResponseWriter, r *http.Request, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, page); err != nil {
		slog.ErrorContext(r.Context(), "Error rendering page", "error", err)
	}
}

func logSubmission(ctx context.Context, function string, res wallet.Result, err error) {
	if err != nil {
		slog.InfoContext(ctx, "Form submission failed", "function", function, "error", err)
		return
	}
	slog.InfoContext(ctx, "Form submission accepted", "function", function, "digest", res.Digest)
}
