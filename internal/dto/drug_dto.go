package dto

// CreateDrugRequest adds a formulary entry. DrugID is caller-assigned.
type CreateDrugRequest struct {
	DrugID         string  `json:"drug_id"    validate:"required"`
	TradeName      string  `json:"trade_name" validate:"required"`
	GenericName    string  `json:"generic_name"`
	LegalCategory  string  `json:"legal_category"`
	PharmaCategory string  `json:"pharma_category"`
	Strength       string  `json:"strength"`
	Unit           string  `json:"unit"`
	Indication     *string `json:"indication"`
	Caution        *string `json:"caution"`
	ImageURL       *string `json:"image_url"`
	Interaction1   *string `json:"interaction1"`
	Interaction2   *string `json:"interaction2"`
	Interaction3   *string `json:"interaction3"`
	Interaction4   *string `json:"interaction4"`
	Interaction5   *string `json:"interaction5"`
	MinStock       int     `json:"min_stock" validate:"min=0"`
	MaxStock       int     `json:"max_stock" validate:"min=0"`
}

type DrugResponse struct {
	DrugID         string `json:"drug_id"`
	TradeName      string `json:"trade_name"`
	GenericName    string `json:"generic_name"`
	LegalCategory  string `json:"legal_category"`
	PharmaCategory string `json:"pharma_category"`
	Strength       string `json:"strength"`
	Unit           string `json:"unit"`
	MinStock       int    `json:"min_stock"`
	MaxStock       int    `json:"max_stock"`
}
