package info

type QueryRequest struct {
	Query string `json:"query" validate:"required,max=300"`
}

type ResultResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

type WeatherRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

type WeatherResponse struct {
	Success     bool    `json:"success"`
	City        string  `json:"city"`
	Weather     string  `json:"weather"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Message     string  `json:"message"`
}
