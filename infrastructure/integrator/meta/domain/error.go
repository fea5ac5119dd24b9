package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// APIError carrega o erro da plataforma para dentro do pipeline. A mensagem
// upstream é preservada porque é gravada em last_check_message.
type APIError struct {
	Message string
	Type    string
	Code    int
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(details *ErrorDetails) *APIError {
	if details == nil {
		return &APIError{Message: "unknown error"}
	}
	return &APIError{
		Message: details.Message,
		Type:    details.Type,
		Code:    details.Code,
	}
}

// IsTokenExpired verifica se o erro é de token expirado.
// O código 190 representa "token expirado" nas respostas da API do Meta.
func (e *APIError) IsTokenExpired() bool {
	return e.Code == 190 || e.Type == "OAuthException"
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (code %d, type %s)", e.Message, e.Code, e.Type)
}
