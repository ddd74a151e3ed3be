package catalogservice

// Service модель услуги из каталога
// BasePrice хранится в копейках
type CatalogService struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	BasePrice       int64  `json:"base_price"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

// Professional модель мастера из каталога
type Professional struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Customer модель клиента из каталога
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
