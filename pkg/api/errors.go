package api

// FieldError представляет одну ошибку из серверного конверта ошибок
// Attr заполнен только для ошибок валидации конкретного поля.
type FieldError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Attr   string `json:"attr,omitempty"`
}

// ErrorResponse представляет общий конверт ошибок сервера
// Все не-2xx ответы имеют форму {type, errors:[{code, detail, attr?}]}.
type ErrorResponse struct {
	Type   string       `json:"type"`
	Errors []FieldError `json:"errors"`
}
