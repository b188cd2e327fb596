package entities

type InquiryEmailData struct {
	FacilityName  string
	InquiryCode   string
	SenderName    string
	SenderRole    string
	Subject       string
	Body          string
	CreatedAtText string
	CurrentYear   int
}
