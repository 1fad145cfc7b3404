package approval

import (
	regdomain "auction-registration/internal/domain/registration"
	regucase "auction-registration/internal/usecase/registration"
)

type VerifyInput struct {
	RegistrationID string
	AdminID        string
}

type RejectInput struct {
	RegistrationID string
	AdminID        string
	Reason         string
}

type ApproveInput struct {
	RegistrationID string
	AdminID        string
}

type ListInput struct {
	AdminID   string
	AuctionID string
	Bucket    regdomain.StatusBucket
	Page      int
	PageSize  int
}

type ListOutput struct {
	Items    []regucase.RegistrationDTO `json:"items"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}
