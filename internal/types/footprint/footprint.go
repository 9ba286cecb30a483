package footprint

// Footprint is a computed carbon-emissions estimate. Total and the four
// category values are tons of CO2 per year rounded to one decimal; the
// comparison fields are percentages rounded to whole numbers and Progress is
// bounded to [0,100].
type Footprint struct {
	Total             float64 `json:"total"`
	Transportation    float64 `json:"transportation"`
	Energy            float64 `json:"energy"`
	Diet              float64 `json:"diet"`
	Consumption       float64 `json:"consumption"`
	ComparedToAverage float64 `json:"compared_to_average"`
	ComparedToTarget  float64 `json:"compared_to_target"`
	Progress          float64 `json:"progress"`
}
