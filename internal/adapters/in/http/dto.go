package http

import "time"

// errorResponse is the JSON body returned for all failed requests.
// AllowedNext is populated only for rejected status transitions.
type errorResponse struct {
	Code        int      `json:"code"`
	Message     string   `json:"message"`
	AllowedNext []string `json:"allowed_next,omitempty"`
}

type addressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type createParcelRequest struct {
	RecipientEmail  string         `json:"recipient_email"`
	PickupAddress   addressPayload `json:"pickup_address"`
	DeliveryAddress addressPayload `json:"delivery_address"`
	WeightKg        float64        `json:"weight_kg"`
	ShippingClass   string         `json:"shipping_class"`
	Fee             float64        `json:"fee"`
}

type createParcelResponse struct {
	ID string `json:"id"`
}

type changeStatusRequest struct {
	Status   string          `json:"status"`
	Note     string          `json:"note,omitempty"`
	Location *addressPayload `json:"location,omitempty"`
}

type noteRequest struct {
	Note string `json:"note,omitempty"`
}

type assignAgentRequest struct {
	AgentID string `json:"agent_id"`
}

type trackingHistoryResponse struct {
	ID                string                 `json:"id"`
	TrackingID        string                 `json:"tracking_id"`
	Status            string                 `json:"status"`
	EstimatedDelivery *time.Time             `json:"estimated_delivery,omitempty"`
	Entries           []trackingEntryPayload `json:"entries"`
}

type trackingEntryPayload struct {
	Status   string          `json:"status"`
	Note     string          `json:"note,omitempty"`
	ActorID  string          `json:"actor_id"`
	At       time.Time       `json:"at"`
	Location *addressPayload `json:"location,omitempty"`
}

// trackParcelResponse is the public tracking view. It deliberately carries no
// account identifiers; anyone holding the tracking identifier may request it.
type trackParcelResponse struct {
	TrackingID        string              `json:"tracking_id"`
	Status            string              `json:"status"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery,omitempty"`
	Entries           []trackEntryPayload `json:"entries"`
}

type trackEntryPayload struct {
	Status   string          `json:"status"`
	Note     string          `json:"note,omitempty"`
	At       time.Time       `json:"at"`
	Location *addressPayload `json:"location,omitempty"`
}

type undeliveredParcelPayload struct {
	ID                string     `json:"id"`
	TrackingID        string     `json:"tracking_id"`
	Status            string     `json:"status"`
	SenderID          string     `json:"sender_id"`
	RecipientID       string     `json:"recipient_id"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}
