package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"anti-theft-gps-tracker/internal/logging"
	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/provider"
	"anti-theft-gps-tracker/internal/wallet"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

var (
	errMissingThreshold   = errors.New("threshold is required")
	errMissingCoordinates = errors.New("latitude and longitude are required")
	errUnknownOperation   = errors.New("unknown operation")
)

type API struct {
	providers   *provider.Providers
	corsOrigins []string
}

type Config struct {
	Providers   *provider.Providers
	CORSOrigins []string
}

func New(cfg Config) *API {
	return &API{providers: cfg.Providers, corsOrigins: cfg.CORSOrigins}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", a.GetPage)
	r.Route("/forms", func(r chi.Router) {
		r.Post("/create-device", a.SubmitCreateDeviceForm)
		r.Post("/update-threshold", a.SubmitUpdateThresholdForm)
		r.Post("/gps-event", a.SubmitGPSEventForm)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: a.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)

		r.Get("/account", a.GetAccount)
		r.Get("/networks", a.GetNetworks)
		r.Post("/descriptors/{operation}", a.EncodeDescriptor)
		r.Post("/devices", a.CreateDevice)
		r.Put("/devices/{device_id}/threshold", a.UpdateThreshold)
		r.Post("/devices/{device_id}/gps-events", a.RegisterGPSEvent)
	})
	return r
}

func (a *API) GetAccount(w http.ResponseWriter, r *http.Request) {
	acct, ok := a.providers.Wallet().Account()
	writeJSON(w, http.StatusOK, AccountResponse{
		Connected: ok,
		Address:   acct.Address,
		PublicKey: acct.PublicKey,
		Network:   a.providers.Network(),
	})
}

func (a *API) GetNetworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NetworksResponse{
		Selected: a.providers.Network(),
		Networks: a.providers.Networks().All(),
	})
}

// EncodeDescriptor only shapes the call so a browser-side wallet can sign it.
func (a *API) EncodeDescriptor(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := a.encode(chi.URLParam(r, "operation"), req)
	if errors.Is(err, errUnknownOperation) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (a *API) encode(operation string, req EncodeRequest) (movecall.Descriptor, error) {
	enc := a.providers.Encoder()
	switch operation {
	case "create-device":
		if req.Threshold == nil {
			return movecall.Descriptor{}, errMissingThreshold
		}
		return enc.CreateDevice(req.Name, *req.Threshold)
	case "update-threshold":
		if req.Threshold == nil {
			return movecall.Descriptor{}, errMissingThreshold
		}
		return enc.UpdateThreshold(req.DeviceID, *req.Threshold)
	case "gps-event":
		if req.Latitude == nil || req.Longitude == nil {
			return movecall.Descriptor{}, errMissingCoordinates
		}
		return enc.RegisterGPSEvent(req.DeviceID, *req.Latitude, *req.Longitude)
	default:
		return movecall.Descriptor{}, errUnknownOperation
	}
}

func (a *API) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := a.encode("create-device", EncodeRequest{Name: req.Name, Threshold: req.Threshold})
	a.execute(w, r, d, err)
}

func (a *API) UpdateThreshold(w http.ResponseWriter, r *http.Request) {
	var req UpdateThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := a.encode("update-threshold", EncodeRequest{
		DeviceID:  chi.URLParam(r, "device_id"),
		Threshold: req.Threshold,
	})
	a.execute(w, r, d, err)
}

func (a *API) RegisterGPSEvent(w http.ResponseWriter, r *http.Request) {
	var req GPSEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := a.encode("gps-event", EncodeRequest{
		DeviceID:  chi.URLParam(r, "device_id"),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	a.execute(w, r, d, err)
}

// execute submits one descriptor. Failures are reported, never retried.
func (a *API) execute(w http.ResponseWriter, r *http.Request, d movecall.Descriptor, encodeErr error) {
	if encodeErr != nil {
		writeError(w, http.StatusBadRequest, encodeErr.Error())
		return
	}
	id := uuid.NewString()
	ctx := logging.WithSubmission(r.Context(), id)

	res, err := a.providers.Wallet().SignAndExecute(ctx, d)
	if err != nil {
		slog.ErrorContext(ctx, "Submission failed",
			"function", d.Target.Function,
			"error", err,
		)
		status := http.StatusBadGateway
		if errors.Is(err, wallet.ErrNotConnected) {
			status = http.StatusConflict
		}
		writeJSON(w, status, SubmissionResponse{SubmissionID: id, Digest: res.Digest, Error: err.Error()})
		return
	}

	slog.InfoContext(ctx, "Submission accepted",
		"function", d.Target.Function,
		"digest", res.Digest,
	)
	writeJSON(w, http.StatusOK, SubmissionResponse{SubmissionID: id, Digest: res.Digest})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
