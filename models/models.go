package models

// AllModels returns all models in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Customer{},
		&TemplateConfig{},
		&Order{},
		&OrderItem{},
		&AppSettings{},
		&RemarkPreset{},
		&UnitPreset{},
	}
}
