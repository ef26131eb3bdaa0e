package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"patient-record-service/internal/delivery/dto"
	"patient-record-service/internal/usecase"
	"patient-record-service/pkg/response"
	"patient-record-service/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, patient)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	patient, err := h.patientUsecase.GetByID(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var req dto.PatientUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFieldsToUpdate):
			response.BadRequest(w, "No fields to update")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	if err := h.patientUsecase.Delete(r.Context(), patientID); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, nil)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter")
			return
		}
		limit = parsed
	}
	lastKey := r.URL.Query().Get("lastKey")

	page, err := h.patientUsecase.List(r.Context(), limit, lastKey)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCursor) {
			response.BadRequest(w, "Invalid lastKey parameter")
			return
		}
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, page)
}

func (h *PatientHandler) SearchByAddress(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		response.BadRequest(w, "address query parameter is required")
		return
	}

	patients, err := h.patientUsecase.FindByAddress(r.Context(), address)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients by address")
		return
	}

	response.Success(w, http.StatusOK, patients)
}

func (h *PatientHandler) SearchByCondition(w http.ResponseWriter, r *http.Request) {
	condition := r.URL.Query().Get("condition")
	if condition == "" {
		response.BadRequest(w, "condition query parameter is required")
		return
	}

	patients, err := h.patientUsecase.FindByCondition(r.Context(), condition)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients by condition")
		return
	}

	response.Success(w, http.StatusOK, patients)
}
