package dto

// TransferRequest carries the input for moving or copying a document between
// two matters.
type TransferRequest struct {
	DocumentID     string `json:"documentID" validate:"required,uuid4"`
	SourceMatterID string `json:"sourceMatterID" validate:"required,uuid4"`
	DestMatterID   string `json:"destMatterID" validate:"required,uuid4,nefield=SourceMatterID"`
}
