package transport

import "time"

type ConfigurationResponse struct {
	PhoneRegion string    `json:"phoneRegion"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetPhoneRegionRequest sets the default region. An empty region clears it.
type SetPhoneRegionRequest struct {
	Region string `json:"region" validate:"max=3,phoneregion"`
}

type SetPhoneRegionResponse struct {
	PreviousRegion  string `json:"previousRegion"`
	Region          string `json:"region"`
	UpdatedContacts int    `json:"updatedContacts"`
}
