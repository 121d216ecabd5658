package models

import "time"

// CommunicationType is the channel used to reach a parent.
type CommunicationType string

const (
	CommunicationTypeEmail        CommunicationType = "email"
	CommunicationTypeSMS          CommunicationType = "sms"
	CommunicationTypeNotification CommunicationType = "notification"
)

// CommunicationStatus is the delivery state of a message.
type CommunicationStatus string

const (
	CommunicationStatusSent   CommunicationStatus = "sent"
	CommunicationStatusRead   CommunicationStatus = "read"
	CommunicationStatusFailed CommunicationStatus = "failed"
)

// Communication is a message sent to a parent.
type Communication struct {
	ID        string              `db:"id" json:"id"`
	ParentID  string              `db:"parent_id" json:"parentId"`
	Type      CommunicationType   `db:"type" json:"type"`
	Subject   string              `db:"subject" json:"subject"`
	Content   string              `db:"content" json:"content"`
	Date      time.Time           `db:"date" json:"date"`
	Status    CommunicationStatus `db:"status" json:"status"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `db:"updated_at" json:"updatedAt"`
}

// CommunicationFilter narrows communication listings.
type CommunicationFilter struct {
	ListParams
	ParentID string
}

// CreateCommunicationRequest is the insert payload for communications.
type CreateCommunicationRequest struct {
	ParentID string              `json:"parentId" validate:"required,uuid"`
	Type     CommunicationType   `json:"type" validate:"required,oneof=email sms notification"`
	Subject  string              `json:"subject" validate:"required,max=255"`
	Content  string              `json:"content" validate:"required"`
	Date     *time.Time          `json:"date"`
	Status   CommunicationStatus `json:"status" validate:"omitempty,oneof=sent read failed"`
}

// UpdateCommunicationRequest is a partial communication update.
type UpdateCommunicationRequest struct {
	ParentID *string              `json:"parentId" validate:"omitempty,uuid"`
	Type     *CommunicationType   `json:"type" validate:"omitempty,oneof=email sms notification"`
	Subject  *string              `json:"subject" validate:"omitempty,min=1,max=255"`
	Content  *string              `json:"content" validate:"omitempty,min=1"`
	Date     *time.Time           `json:"date"`
	Status   *CommunicationStatus `json:"status" validate:"omitempty,oneof=sent read failed"`
}

// CommunicationDispatchMessage is published for external delivery.
type CommunicationDispatchMessage struct {
	CommunicationID string            `json:"communicationId"`
	ParentID        string            `json:"parentId"`
	ParentName      string            `json:"parentName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Type            CommunicationType `json:"type"`
	Subject         string            `json:"subject"`
	Content         string            `json:"content"`
	QueuedAt        time.Time         `json:"queuedAt"`
}
