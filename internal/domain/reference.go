package domain

// Safety rule target keywords. The keyword space is closed: these values
// are the normalized tokens the ETL derives from warning texts, plus the
// two meta keywords covering "any declared medication".
const (
	KeywordPregnancy       = "임산부/수유부"
	KeywordAllergy         = "알레르기"
	KeywordChildren        = "어린이"
	KeywordGeneralCaution  = "주의"
	KeywordCheckMedication = "복용약 확인"
	KeywordDrugInteraction = "의약품/질환"
)

// Ingredient is one nutritional ingredient from the reference catalog.
// Unique by Korean name.
type Ingredient struct {
	ID         uint   `gorm:"primaryKey" json:"ingredientId"`
	NameKor    string `gorm:"size:100;uniqueIndex" json:"name"`
	Summary    string `json:"summary"`
	RDA        string `gorm:"column:rda" json:"rda"` // recommended daily intake text
	UL         string `gorm:"column:ul" json:"ul"`   // upper intake limit text
	SourceType string `gorm:"size:20" json:"sourceType"`
}

// ConcernMapping defines the base score a chosen health concern
// contributes to an ingredient. One row per (selection, ingredient) pair.
type ConcernMapping struct {
	ID           uint `gorm:"primaryKey"`
	SelectionID  uint `gorm:"uniqueIndex:idx_concern_ingredient"`
	IngredientID uint `gorm:"uniqueIndex:idx_concern_ingredient"`
	BaseScore    int  `gorm:"default:10"`
}

// SafetyRule flags an ingredient against a target keyword. An ingredient
// may carry zero or many rules.
type SafetyRule struct {
	ID             uint   `gorm:"primaryKey"`
	IngredientID   uint   `gorm:"index"`
	TargetType     string `gorm:"size:50"`
	TargetName     string `gorm:"size:100;index"`
	RiskLevel      int    `gorm:"default:2"`
	WarningMessage string
}

// Product is one commercial product from the reference catalog.
type Product struct {
	ID                  uint   `gorm:"primaryKey" json:"productId"`
	ProductName         string `gorm:"size:255" json:"productName"`
	CompanyName         string `gorm:"size:100" json:"companyName"`
	MainIngredientsText string `json:"-"`
	Precautions         string `json:"-"`
	APISourceID         string `gorm:"size:100;uniqueIndex" json:"-"`
}

// Catalog bundles the reference tables for a bulk load.
type Catalog struct {
	Selections  []SelectionOption
	Ingredients []Ingredient
	Mappings    []ConcernMapping
	SafetyRules []SafetyRule
	Products    []Product
}

// ConcernMappingRow is one mapping row joined with its selection name,
// as consumed by the base scorer. Rows arrive in creation order so that
// first-seen ingredient order is stable.
type ConcernMappingRow struct {
	IngredientID  uint
	BaseScore     int
	SelectionName string
}

// IngredientStat is one row of the admin recommendation statistics.
type IngredientStat struct {
	Name     string  `json:"name"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avgScore"`
}
