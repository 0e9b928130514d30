package request

type CreateAccountRequest struct {
	Name        string `json:"name"`
	Broker      string `json:"broker,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Broker      *string `json:"broker,omitempty"`
	Description *string `json:"description,omitempty"`
	IsArchived  *bool   `json:"isArchived,omitempty"`
}
