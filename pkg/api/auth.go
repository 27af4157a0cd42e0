package api

// TokenObtainRequest представляет запрос на получение пары токенов
type TokenObtainRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде (только по TLS)
}

// TokenObtainPair представляет ответ с парой токенов доступа
type TokenObtainPair struct {
	Access  string `json:"access"`  // JWT access token (короткоживущий)
	Refresh string `json:"refresh"` // JWT refresh token (долгоживущий)
}

// TokenRefreshRequest представляет запрос на обновление access токена
type TokenRefreshRequest struct {
	Refresh string `json:"refresh"` // refresh token
}

// TokenRefresh представляет ответ на обновление access токена
type TokenRefresh struct {
	Access string `json:"access"` // новый JWT access token
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// RegisterResponse представляет ответ на успешную регистрацию
// Сервер не возвращает токены: после регистрации требуется отдельный login.
type RegisterResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UserInfo представляет профиль аутентифицированного пользователя
type UserInfo struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Message представляет ответ с информационным сообщением сервера
type Message struct {
	Detail string `json:"detail"`
}
