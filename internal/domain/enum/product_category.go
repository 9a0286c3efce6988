package enum

// ProductCategory groups products on the sales floor
type ProductCategory string

const (
	CategoryClothing    ProductCategory = "Clothing"
	CategoryFootwear    ProductCategory = "Footwear"
	CategoryAccessories ProductCategory = "Accessories"
)

// ProductCategories lists every category in display order
var ProductCategories = []ProductCategory{CategoryClothing, CategoryFootwear, CategoryAccessories}

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// BrandType tags a brand by the kind of goods it sells
type BrandType string

const (
	BrandTypeClothing BrandType = "Clothing"
	BrandTypeFootwear BrandType = "Footwear"
	BrandTypeMixed    BrandType = "Mixed"
)

func (t BrandType) String() string {
	return string(t)
}
