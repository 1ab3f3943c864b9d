package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MatchResponse struct {
	IsMatch bool `json:"isMatch"`
}
