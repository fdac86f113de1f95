package models

// SensorKind identifies a measured quantity on the live dashboard.
type SensorKind string

const (
	SensorTemperature SensorKind = "temperature"
	SensorHumidity    SensorKind = "humidity"
	SensorRain        SensorKind = "rain"
	SensorSolar       SensorKind = "solar"
)

// Sensor describes one feed of the external sensor API. Source is the path
// segment the upstream API uses for that feed.
type Sensor struct {
	ID     uint64     `gorm:"primarykey" json:"id"`
	Kind   SensorKind `gorm:"type:varchar(50);uniqueIndex;not null" json:"kind"`
	Unit   string     `gorm:"type:varchar(20);not null" json:"unit"`
	Source string     `gorm:"type:varchar(100);not null" json:"source"`
}

// DefaultSensors is the catalogue seeded on first start.
var DefaultSensors = []Sensor{
	{Kind: SensorTemperature, Unit: "°C", Source: "temperatura"},
	{Kind: SensorHumidity, Unit: "%", Source: "humedad"},
	{Kind: SensorRain, Unit: "mm", Source: "lluvia"},
	{Kind: SensorSolar, Unit: "W/m²", Source: "radiacion_solar"},
}
