package models

// ServiceItem is one entry of the shop's service catalog, loaded from
// configs/services.yaml at startup.
type ServiceItem struct {
	Name            string `yaml:"name" json:"name"`
	Price           int    `yaml:"price" json:"price"`
	DurationMinutes int    `yaml:"duration_minutes" json:"durationMinutes"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
}
