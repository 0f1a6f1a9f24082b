package controllers

import (
	"net/http"

	"github.com/rss-it/visitreport-backend/api/responses"
	"github.com/rss-it/visitreport-backend/api/validators"
	"github.com/rss-it/visitreport-backend/internal/storage"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

// RackList returns the report's racks with their devices.
func RackList(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		racks, err := svc.ListRacks(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, racks)
	}
}

// RackCreate documents a new rack.
func RackCreate(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		reportID, err := parseIDParam(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storage.CreateRackInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rack, err := svc.CreateRack(r.Context(), reportID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rack)
	}
}

// RackUpdate patches rack fields, holding the layout rules.
func RackUpdate(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		rackID, err := parseIDParam(r, "rackId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storage.UpdateRackInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rack, err := svc.UpdateRack(r.Context(), rackID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rack)
	}
}

// RackDelete removes the rack and its devices.
func RackDelete(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		rackID, err := parseIDParam(r, "rackId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRack(r.Context(), rackID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// RackLayout returns the per-unit elevation view.
func RackLayout(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		rackID, err := parseIDParam(r, "rackId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.Layout(r.Context(), rackID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, layout)
	}
}

// DeviceAdd mounts a device after placement validation.
func DeviceAdd(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		rackID, err := parseIDParam(r, "rackId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload storage.AddDeviceInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		device, err := svc.AddDevice(r.Context(), rackID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, device)
	}
}

// DeviceRemove unmounts one device.
func DeviceRemove(svc storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage service unavailable"))
			return
		}

		deviceID, err := parseIDParam(r, "deviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveDevice(r.Context(), deviceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
