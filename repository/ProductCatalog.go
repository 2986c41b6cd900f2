package repository

import (
	"bakeShop/entities"
)

// ProductCatalog is a read-only lookup over the storefront's product list.
type ProductCatalog interface {
	GetProductById(id int) (product entities.Product, exists bool)
	GetProductBySlug(slug string) (product entities.Product, exists bool)
	GetProductsByCategory(category string) (products []entities.Product)
	AllProducts() (products []entities.Product)
}

type StaticCatalog struct {
	ordered []entities.Product
	byId    map[int]entities.Product
	bySlug  map[string]entities.Product
}

func NewStaticCatalog(products []entities.Product) ProductCatalog {
	c := &StaticCatalog{
		ordered: make([]entities.Product, len(products)),
		byId:    make(map[int]entities.Product, len(products)),
		bySlug:  make(map[string]entities.Product, len(products)),
	}
	copy(c.ordered, products)
	for _, p := range products {
		c.byId[p.Id] = p
		c.bySlug[p.Slug] = p
	}
	return c
}

func (c *StaticCatalog) GetProductById(id int) (product entities.Product, exists bool) {
	product, exists = c.byId[id]
	return
}

func (c *StaticCatalog) GetProductBySlug(slug string) (product entities.Product, exists bool) {
	product, exists = c.bySlug[slug]
	return
}

func (c *StaticCatalog) GetProductsByCategory(category string) (products []entities.Product) {
	for _, p := range c.ordered {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return
}

func (c *StaticCatalog) AllProducts() (products []entities.Product) {
	products = make([]entities.Product, len(c.ordered))
	copy(products, c.ordered)
	return
}
