package attendance

import "github.com/google/uuid"

type CheckInRequest struct {
	WorkerID  uuid.UUID `json:"worker_id" binding:"required"`
	Source    string    `json:"source" binding:"omitempty,oneof=QR MANUAL"`
	Latitude  *float64  `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64  `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Notes     *string   `json:"notes" binding:"omitempty,max=500"`
}

type CheckOutRequest struct {
	WorkerID  uuid.UUID `json:"worker_id" binding:"required"`
	Latitude  *float64  `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64  `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Notes     *string   `json:"notes" binding:"omitempty,max=500"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	WorkerID       string   `json:"worker_id"`
	AttendanceDate string   `json:"attendance_date"`
	CheckIn        string   `json:"check_in"`
	CheckOut       *string  `json:"check_out,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}
