package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/medication"
)

func TestHandleAddMedication(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockProgressService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: AddMedicationRequest{
				UserID:         "user-1",
				Name:           "Metformin",
				Dosage:         "500mg",
				Frequency:      "daily",
				ScheduledTimes: []string{"08:00", "20:00"},
			},
			setupMock: func(m *MockProgressService) {
				m.On("AddMedication", mock.Anything, "user-1", "Metformin", "500mg",
					domain.FrequencyDaily, []string{"08:00", "20:00"}).Return(&domain.Medication{
					ID: "med-1", Name: "Metformin", Frequency: domain.FrequencyDaily,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"name":"Metformin"`,
		},
		{
			name: "Invalid Frequency",
			requestBody: AddMedicationRequest{
				UserID:    "user-1",
				Name:      "Metformin",
				Frequency: "hourly",
			},
			setupMock:      func(m *MockProgressService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Invalid Schedule Token",
			requestBody: AddMedicationRequest{
				UserID:         "user-1",
				Name:           "Metformin",
				Frequency:      "daily",
				ScheduledTimes: []string{"25:99"},
			},
			setupMock: func(m *MockProgressService) {
				m.On("AddMedication", mock.Anything, "user-1", "Metformin", "",
					domain.FrequencyDaily, []string{"25:99"}).Return(nil, domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockProgressService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/medications", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleAddMedication(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleRemoveMedication(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockProgressService{}
		mockSvc.On("RemoveMedication", mock.Anything, "user-1", "med-1").Return(nil)

		body, _ := json.Marshal(RemoveMedicationRequest{UserID: "user-1", MedicationID: "med-1"})
		req := httptest.NewRequest("DELETE", "/medications/remove", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleRemoveMedication(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgMedicationRemovedSuccess)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown Medication", func(t *testing.T) {
		mockSvc := &MockProgressService{}
		mockSvc.On("RemoveMedication", mock.Anything, "user-1", "nope").Return(domain.ErrMedicationNotFound)

		body, _ := json.Marshal(RemoveMedicationRequest{UserID: "user-1", MedicationID: "nope"})
		req := httptest.NewRequest("DELETE", "/medications/remove", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleRemoveMedication(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgMedicationNotFoundError)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleLogDose(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockProgressService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: LogDoseRequest{UserID: "user-1", MedicationID: "med-1", Ordinal: 0},
			setupMock: func(m *MockProgressService) {
				m.On("LogDose", mock.Anything, "user-1", "med-1", 0).Return(&medication.DoseResult{
					Dose:      domain.MedicationDose{MedicationID: "med-1", Ordinal: 0, Taken: true},
					XPAwarded: 5,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"xp_awarded":5`,
		},
		{
			name:        "No Slot At Ordinal",
			requestBody: LogDoseRequest{UserID: "user-1", MedicationID: "med-1", Ordinal: 7},
			setupMock: func(m *MockProgressService) {
				m.On("LogDose", mock.Anything, "user-1", "med-1", 7).Return(nil, domain.ErrInvalidDoseSlot)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidDoseSlotError,
		},
		{
			name:        "Already Logged As Missed",
			requestBody: LogDoseRequest{UserID: "user-1", MedicationID: "med-1", Ordinal: 0},
			setupMock: func(m *MockProgressService) {
				m.On("LogDose", mock.Anything, "user-1", "med-1", 0).Return(nil, domain.ErrDoseConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDoseConflictError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockProgressService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/medications/dose", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleLogDose(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetAdherence(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockProgressService{}
		mockSvc.On("Adherence", mock.Anything, "user-1", "med-1", 7).Return(&domain.AdherenceRecord{
			MedicationID: "med-1", WindowDays: 7, TakenCount: 5, ScheduledCount: 7, Percent: 71,
		}, nil)

		req := httptest.NewRequest("GET", "/medications/adherence?user_id=user-1&medication_id=med-1&window_days=7", nil)
		w := httptest.NewRecorder()

		HandleGetAdherence(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"percent":71`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Default Window", func(t *testing.T) {
		mockSvc := &MockProgressService{}
		mockSvc.On("Adherence", mock.Anything, "user-1", "med-1", 0).Return(&domain.AdherenceRecord{
			MedicationID: "med-1", WindowDays: 7, ScheduledCount: 0, Percent: 100,
		}, nil)

		req := httptest.NewRequest("GET", "/medications/adherence?user_id=user-1&medication_id=med-1", nil)
		w := httptest.NewRecorder()

		HandleGetAdherence(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid Window", func(t *testing.T) {
		mockSvc := &MockProgressService{}

		req := httptest.NewRequest("GET", "/medications/adherence?user_id=user-1&medication_id=med-1&window_days=-3", nil)
		w := httptest.NewRecorder()

		HandleGetAdherence(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidWindowDays)
	})

	t.Run("Missing Medication ID", func(t *testing.T) {
		mockSvc := &MockProgressService{}

		req := httptest.NewRequest("GET", "/medications/adherence?user_id=user-1", nil)
		w := httptest.NewRecorder()

		HandleGetAdherence(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "medication_id")
	})
}
