package store

import "exhibition-service/internal/models"

// Mutations shared by both backends operate on a whole snapshot, so the
// memory and file variants cannot drift apart behaviorally.

func addProduct(db *models.Database, p models.Product) *models.Product {
	db.Products = append(db.Products, p)
	return &db.Products[len(db.Products)-1]
}

func findProduct(db *models.Database, id string) *models.Product {
	for i := range db.Products {
		if db.Products[i].ID == id {
			return &db.Products[i]
		}
	}
	return nil
}

func deleteProduct(db *models.Database, id string) bool {
	for i := range db.Products {
		if db.Products[i].ID == id {
			db.Products = append(db.Products[:i], db.Products[i+1:]...)
			return true
		}
	}
	return false
}

func addOrder(db *models.Database, o models.Order) *models.Order {
	db.Orders = append(db.Orders, o)
	return &db.Orders[len(db.Orders)-1]
}

func addExhibition(db *models.Database, e models.Exhibition) *models.Exhibition {
	db.Exhibitions = append(db.Exhibitions, e)
	return &db.Exhibitions[len(db.Exhibitions)-1]
}

func findExhibition(db *models.Database, id string) *models.Exhibition {
	for i := range db.Exhibitions {
		if db.Exhibitions[i].ID == id {
			return &db.Exhibitions[i]
		}
	}
	return nil
}

func addExhibitionProduct(db *models.Database, ep models.ExhibitionProduct) *models.ExhibitionProduct {
	db.ExhibitionProducts = append(db.ExhibitionProducts, ep)
	return &db.ExhibitionProducts[len(db.ExhibitionProducts)-1]
}

func findExhibitionProduct(db *models.Database, id string) *models.ExhibitionProduct {
	for i := range db.ExhibitionProducts {
		if db.ExhibitionProducts[i].ID == id {
			return &db.ExhibitionProducts[i]
		}
	}
	return nil
}

func exhibitionProductsByExhibition(db *models.Database, exhibitionID string) []models.ExhibitionProduct {
	out := []models.ExhibitionProduct{}
	for _, ep := range db.ExhibitionProducts {
		if ep.ExhibitionID == exhibitionID {
			out = append(out, ep)
		}
	}
	return out
}

func addProductList(db *models.Database, pl models.ProductList) *models.ProductList {
	db.ProductLists = append(db.ProductLists, pl)
	return &db.ProductLists[len(db.ProductLists)-1]
}

func findProductList(db *models.Database, id string) *models.ProductList {
	for i := range db.ProductLists {
		if db.ProductLists[i].ID == id {
			return &db.ProductLists[i]
		}
	}
	return nil
}

func productListsByExhibition(db *models.Database, exhibitionID string) []models.ProductList {
	out := []models.ProductList{}
	for _, pl := range db.ProductLists {
		if pl.ExhibitionID == exhibitionID {
			out = append(out, pl)
		}
	}
	return out
}

func addProductListItem(db *models.Database, item models.ProductListItem) *models.ProductListItem {
	db.ProductListItems = append(db.ProductListItems, item)
	return &db.ProductListItems[len(db.ProductListItems)-1]
}

func itemsByProductList(db *models.Database, productListID string) []models.ProductListItem {
	out := []models.ProductListItem{}
	for _, item := range db.ProductListItems {
		if item.ProductListID == productListID {
			out = append(out, item)
		}
	}
	return out
}

func deleteItemsByProductList(db *models.Database, productListID string) {
	kept := db.ProductListItems[:0]
	for _, item := range db.ProductListItems {
		if item.ProductListID != productListID {
			kept = append(kept, item)
		}
	}
	db.ProductListItems = kept
}

func copyProducts(src []models.Product) []models.Product {
	return append([]models.Product{}, src...)
}

func copyOrders(src []models.Order) []models.Order {
	return append([]models.Order{}, src...)
}

func copyExhibitions(src []models.Exhibition) []models.Exhibition {
	return append([]models.Exhibition{}, src...)
}

func copyExhibitionProducts(src []models.ExhibitionProduct) []models.ExhibitionProduct {
	return append([]models.ExhibitionProduct{}, src...)
}

func copyProductLists(src []models.ProductList) []models.ProductList {
	return append([]models.ProductList{}, src...)
}
