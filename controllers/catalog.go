// controllers/catalog.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glambook-backend/models"
	"glambook-backend/repository"
	"glambook-backend/utils"
)

type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
	Category    string  `json:"category"`
}

type UpdateServiceInput struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Duration    *int              `json:"duration"`
	Category    *string           `json:"category"`
	State       *models.Lifecycle `json:"state"`
}

type BulkPriceInput struct {
	ServiceIDs []string `json:"serviceIds" binding:"required,min=1"`
	Mode       string   `json:"mode" binding:"required"`
	Amount     float64  `json:"amount" binding:"required"`
}

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
	Category    string  `json:"category"`
}

func GetServices(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Catalog.GetServices())
}

func CreateService(c *gin.Context) {
	repos := reposFrom(c)

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc, res := repos.Catalog.CreateService(models.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Category:    input.Category,
	}, actorFrom(c))
	if !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func UpdateService(c *gin.Context) {
	repos := reposFrom(c)
	svc := repos.Catalog.GetService(c.Param("id"))
	if svc == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Price != nil {
		svc.Price = *input.Price
	}
	if input.Duration != nil {
		svc.Duration = *input.Duration
	}
	if input.Category != nil {
		svc.Category = *input.Category
	}
	if input.State != nil {
		svc.State = *input.State
	}

	if res := repos.Catalog.SaveService(*svc, actorFrom(c)); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService soft deletes a service
func DeleteService(c *gin.Context) {
	repos := reposFrom(c)
	if !repos.Catalog.DeleteService(c.Param("id"), actorFrom(c)) {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// BulkUpdatePrices applies a percentage or fixed delta to several services at
// once; unknown ids are skipped rather than failing the batch.
func BulkUpdatePrices(c *gin.Context) {
	repos := reposFrom(c)

	var input BulkPriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Mode != repository.PriceDeltaPercent && input.Mode != repository.PriceDeltaFixed {
		utils.RespondWithError(c, http.StatusBadRequest, "mode must be percent or fixed")
		return
	}

	updated, res := repos.Catalog.BulkUpdatePrices(input.ServiceIDs, input.Mode, input.Amount, actorFrom(c))
	if !res.Success {
		utils.RespondWithError(c, http.StatusInternalServerError, res.Error)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func GetPriceHistory(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Catalog.PriceHistory())
}

func GetProducts(c *gin.Context) {
	repos := reposFrom(c)
	c.JSON(http.StatusOK, repos.Catalog.GetProducts())
}

func CreateProduct(c *gin.Context) {
	repos := reposFrom(c)

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	p, res := repos.Catalog.CreateProduct(models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
	}, actorFrom(c))
	if !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func UpdateProduct(c *gin.Context) {
	repos := reposFrom(c)
	p := repos.Catalog.GetProduct(c.Param("id"))
	if p == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	var input struct {
		Name     *string  `json:"name"`
		Price    *float64 `json:"price"`
		Stock    *int     `json:"stock"`
		Category *string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Category != nil {
		p.Category = *input.Category
	}

	if res := repos.Catalog.SaveProduct(*p, actorFrom(c)); !res.Success {
		utils.RespondWithError(c, http.StatusBadRequest, res.Error)
		return
	}
	c.JSON(http.StatusOK, p)
}

func DeleteProduct(c *gin.Context) {
	repos := reposFrom(c)
	if !repos.Catalog.DeleteProduct(c.Param("id"), actorFrom(c)) {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
