package controllers

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
)

type ProductController struct {
	catalog *services.CatalogService
	ids     Identity
}

func NewProductController(catalog *services.CatalogService, ids Identity) *ProductController {
	return &ProductController{catalog: catalog, ids: ids}
}

func (p *ProductController) Create(c *ctx.Context) {
	user, ok := staffUser(c, p.ids, services.OpCreateProduct)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.DecodeJSON(&in) {
		return
	}

	product, err := p.catalog.Create(c.Context(), user, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusCreated, "Product is created successfully", product.Summary())
}

func (p *ProductController) List(c *ctx.Context) {
	user, ok := staffUser(c, p.ids, services.OpListProducts)
	if !ok {
		return
	}
	products, err := p.catalog.List(c.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]any, 0, len(products))
	for _, pr := range products {
		out = append(out, pr.Summary())
	}
	c.Success(out)
}

func (p *ProductController) Show(c *ctx.Context) {
	user, ok := staffUser(c, p.ids, services.OpShowProduct)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := p.catalog.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product.Summary())
}

func (p *ProductController) Update(c *ctx.Context) {
	user, ok := staffUser(c, p.ids, services.OpUpdateProduct)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.ProductPatch
	if !c.DecodeJSON(&in) {
		return
	}

	product, err := p.catalog.Update(c.Context(), user, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusOK, fmt.Sprintf("Product with ID %d has been updated", id), product.Summary())
}

func (p *ProductController) Delete(c *ctx.Context) {
	user, ok := staffUser(c, p.ids, services.OpDeleteProduct)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := p.catalog.Delete(c.Context(), user, id); err != nil {
		fail(c, err)
		return
	}
	c.Message(fmt.Sprintf("Product with ID %d has been deleted", id))
}
