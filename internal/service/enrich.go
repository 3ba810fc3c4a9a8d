package service

import "exhibition-service/internal/models"

// ProductFields are display-only fields attached at read time by joining a
// record's productId against the catalog. When the referenced product does
// not exist the pointers stay nil and the JSON keys are omitted; a dangling
// reference never fails a read. Nothing here is ever persisted.
type ProductFields struct {
	ProductName  *string `json:"productName,omitempty"`
	ProductImage *string `json:"productImage,omitempty"`
	ProductUnit  *string `json:"productUnit,omitempty"`
}

func indexProducts(products []models.Product) map[string]models.Product {
	idx := make(map[string]models.Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

func lookupProductFields(idx map[string]models.Product, productID string) ProductFields {
	p, ok := idx[productID]
	if !ok {
		return ProductFields{}
	}
	fields := ProductFields{
		ProductName: &p.Name,
		ProductUnit: &p.Unit,
	}
	if p.Image != "" {
		fields.ProductImage = &p.Image
	}
	return fields
}

func indexExhibitionsByCode(exhibitions []models.Exhibition) map[string]models.Exhibition {
	idx := make(map[string]models.Exhibition, len(exhibitions))
	for _, e := range exhibitions {
		idx[e.ExhibitionID] = e
	}
	return idx
}
