package types

// KeyFeature pairs a product feature with its customer-facing benefit.
type KeyFeature struct {
	Feature string `json:"feature" validate:"required"`
	Benefit string `json:"benefit" validate:"required"`
}

// FAQ is one generated question/answer pair.
type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// Metafield mirrors the commerce platform's namespaced custom field triple.
type Metafield struct {
	Namespace string `json:"namespace" validate:"required"`
	Key       string `json:"key" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Value     string `json:"value" validate:"required"`
}
